package transform

import (
	"strings"

	"rugstore/internal/domain/entity"
	"rugstore/internal/domain/raw"
)

// Lead maps a raw leads document. Unknown types read as contact and unknown
// statuses as new, so a lead is never hidden from the pipeline.
func (t *Transformer) Lead(r raw.Lead) entity.Lead {
	leadType := entity.LeadType(strings.ToLower(value(r.Type)))
	if leadType == "enquiry" {
		leadType = entity.LeadTypeProductEnquiry
	}
	if !leadType.Valid() {
		leadType = entity.LeadTypeContact
	}
	status := entity.LeadStatus(strings.ToLower(value(r.Status)))
	if !status.Valid() {
		status = entity.LeadStatusNew
	}

	return entity.Lead{
		ID:            r.ID,
		Type:          leadType,
		Name:          value(r.Name),
		Email:         value(r.Email),
		Phone:         value(r.Phone),
		Company:       value(r.Company),
		Message:       value(r.Message),
		Status:        status,
		ProductID:     value(r.ProductID),
		ProductName:   value(r.ProductName),
		CollectionID:  value(r.CollectionID),
		Customization: customization(r.Customization),
		Source:        value(r.Source),
		AssignedTo:    value(r.AssignedTo),
		Notes:         t.notes(r.Notes),
		CreatedAt:     t.Timestamp(r.CreatedAt),
		UpdatedAt:     t.Timestamp(r.UpdatedAt),
	}
}

func customization(r *raw.Customization) entity.Customization {
	if r == nil {
		return entity.Customization{Materials: []string{}, Moodboard: []entity.UploadedFile{}}
	}
	files := make([]entity.UploadedFile, len(r.Moodboard))
	for i, f := range r.Moodboard {
		files[i] = entity.UploadedFile{
			Name:        value(f.Name),
			URL:         value(f.URL),
			StorageRef:  value(f.StorageRef),
			ContentType: value(f.ContentType),
			Size:        int64(intValue(f.Size)),
		}
	}
	return entity.Customization{
		PreferredSize: value(r.PreferredSize),
		Materials:     nonNil(r.Materials),
		Colors:        value(r.Colors),
		Budget:        value(r.Budget),
		Moodboard:     files,
	}
}

func (t *Transformer) notes(rs []raw.LeadNote) []entity.LeadNote {
	notes := make([]entity.LeadNote, len(rs))
	for i, r := range rs {
		notes[i] = entity.LeadNote{
			ID:        value(r.ID),
			Text:      value(r.Text),
			Author:    value(r.Author),
			CreatedAt: t.Timestamp(r.CreatedAt),
		}
	}
	return notes
}
