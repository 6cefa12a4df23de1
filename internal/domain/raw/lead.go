package raw

type UploadedFile struct {
	Name        *string
	URL         *string
	StorageRef  *string
	ContentType *string
	Size        *int
}

type Customization struct {
	PreferredSize *string
	Materials     []string
	Colors        *string
	Budget        *string
	Moodboard     []UploadedFile
}

type LeadNote struct {
	ID        *string
	Text      *string
	Author    *string
	CreatedAt any
}

type Lead struct {
	ID            string
	Type          *string
	Name          *string
	Email         *string
	Phone         *string
	Company       *string
	Message       *string
	Status        *string
	ProductID     *string
	ProductName   *string
	CollectionID  *string
	Customization *Customization
	Source        *string
	AssignedTo    *string
	Notes         []LeadNote
	CreatedAt     any
	UpdatedAt     any
}

func DecodeLead(id string, doc Document) Lead {
	l := Lead{
		ID:           id,
		Type:         str(doc, "type", "formType"),
		Name:         str(doc, "name", "fullName"),
		Email:        str(doc, "email"),
		Phone:        str(doc, "phone"),
		Company:      str(doc, "company", "companyName"),
		Message:      str(doc, "message"),
		Status:       str(doc, "status"),
		ProductID:    str(doc, "productId"),
		ProductName:  str(doc, "productName"),
		CollectionID: str(doc, "collectionId"),
		Source:       str(doc, "source"),
		AssignedTo:   str(doc, "assignedTo"),
		Notes:        leadNotes(doc),
		CreatedAt:    timestamp(doc, "createdAt"),
		UpdatedAt:    timestamp(doc, "updatedAt"),
	}

	if m := object(doc, "customization"); m != nil {
		l.Customization = &Customization{
			PreferredSize: str(m, "preferredSize", "size"),
			Materials:     strs(m, "materials"),
			Colors:        str(m, "colors", "colours"),
			Budget:        str(m, "budget"),
			Moodboard:     uploadedFiles(m, "moodboard", "files"),
		}
	}
	return l
}

func leadNotes(doc Document) []LeadNote {
	v, ok := first(doc, "notes")
	if !ok {
		return nil
	}
	// legacy: a single free-text note
	if text, isString := v.(string); isString {
		return []LeadNote{{Text: &text}}
	}
	xs, isList := list(v)
	if !isList {
		return nil
	}
	notes := make([]LeadNote, 0, len(xs))
	for _, x := range xs {
		m, isMap := x.(map[string]any)
		if !isMap {
			continue
		}
		notes = append(notes, LeadNote{
			ID:        str(m, "id"),
			Text:      str(m, "text", "note"),
			Author:    str(m, "author", "createdBy"),
			CreatedAt: timestamp(m, "createdAt"),
		})
	}
	return notes
}

func uploadedFiles(doc Document, keys ...string) []UploadedFile {
	v, ok := first(doc, keys...)
	if !ok {
		return nil
	}
	xs, isList := list(v)
	if !isList {
		return nil
	}
	files := make([]UploadedFile, 0, len(xs))
	for _, x := range xs {
		switch item := x.(type) {
		case string:
			url := item
			files = append(files, UploadedFile{URL: &url})
		case map[string]any:
			files = append(files, UploadedFile{
				Name:        str(item, "name", "fileName"),
				URL:         str(item, "url"),
				StorageRef:  str(item, "storageRef", "storagePath", "path"),
				ContentType: str(item, "contentType", "type"),
				Size:        integer(item, "size"),
			})
		}
	}
	return files
}
