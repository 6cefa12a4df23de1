// Package result holds Result, the value every accessor returns in place of
// a (value, error) pair. The zero Result is loading.
package result

import (
	"encoding/json"
	"fmt"
)

type state uint8

const (
	loading state = iota
	data
	failed
)

// Result is exactly one of data, error or loading.
type Result[T any] struct {
	state   state
	value   T
	message string
	code    string
}

func Data[T any](v T) Result[T] {
	return Result[T]{state: data, value: v}
}

// Error carries a message safe to show to visitors.
func Error[T any](message string) Result[T] {
	return Result[T]{state: failed, message: message}
}

// ErrorWithCode attaches a machine readable code such as NOT_FOUND.
func ErrorWithCode[T any](code, message string) Result[T] {
	return Result[T]{state: failed, message: message, code: code}
}

func Errorf[T any](format string, args ...any) Result[T] {
	return Error[T](fmt.Sprintf(format, args...))
}

func Loading[T any]() Result[T] {
	return Result[T]{}
}

func (r Result[T]) IsData() bool    { return r.state == data }
func (r Result[T]) IsError() bool   { return r.state == failed }
func (r Result[T]) IsLoading() bool { return r.state == loading }

// Value returns the payload and whether the result holds data.
func (r Result[T]) Value() (T, bool) {
	return r.value, r.state == data
}

func (r Result[T]) Message() string {
	return r.message
}

func (r Result[T]) Code() string {
	return r.code
}

// Map transforms the data of r, passing error and loading through.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	switch r.state {
	case data:
		return Data(fn(r.value))
	case failed:
		return Result[U]{state: failed, message: r.message, code: r.code}
	}
	return Loading[U]()
}

type wire[T any] struct {
	Data    *T      `json:"data"`
	Error   *string `json:"error"`
	Loading bool    `json:"loading"`
}

func (r Result[T]) MarshalJSON() ([]byte, error) {
	w := wire[T]{Loading: r.state == loading}
	switch r.state {
	case data:
		v := r.value
		w.Data = &v
	case failed:
		msg := r.message
		w.Error = &msg
	}
	return json.Marshal(w)
}
