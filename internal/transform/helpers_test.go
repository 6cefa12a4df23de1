package transform

import (
	"encoding/json"
	"reflect"

	"rugstore/internal/domain/entity"
)

func equalProducts(a, b entity.Product) bool {
	return reflect.DeepEqual(a, b)
}

func equalJSON(a, b any) bool {
	x, errA := json.Marshal(a)
	y, errB := json.Marshal(b)
	return errA == nil && errB == nil && string(x) == string(y)
}
