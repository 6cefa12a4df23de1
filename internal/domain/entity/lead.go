package entity

import "strings"

type LeadType string

const (
	LeadTypeContact        LeadType = "contact"
	LeadTypeCustomize      LeadType = "customize"
	LeadTypeProductEnquiry LeadType = "product-enquiry"
	LeadTypeTrade          LeadType = "trade"
)

func (t LeadType) Valid() bool {
	switch t {
	case LeadTypeContact, LeadTypeCustomize, LeadTypeProductEnquiry, LeadTypeTrade:
		return true
	}
	return false
}

type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusQualified LeadStatus = "qualified"
	LeadStatusConverted LeadStatus = "converted"
	LeadStatusClosed    LeadStatus = "closed"
)

// LeadStatuses lists the pipeline in order.
var LeadStatuses = []LeadStatus{
	LeadStatusNew,
	LeadStatusContacted,
	LeadStatusQualified,
	LeadStatusConverted,
	LeadStatusClosed,
}

func (s LeadStatus) Valid() bool {
	for _, known := range LeadStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// UploadedFile is a moodboard attachment stored in file storage.
type UploadedFile struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	StorageRef  string `json:"storageRef"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

type Customization struct {
	PreferredSize string         `json:"preferredSize"`
	Materials     []string       `json:"materials"`
	Colors        string         `json:"colors"`
	Budget        string         `json:"budget"`
	Moodboard     []UploadedFile `json:"moodboard"`
}

func (c Customization) IsZero() bool {
	return c.PreferredSize == "" && len(c.Materials) == 0 && c.Colors == "" &&
		c.Budget == "" && len(c.Moodboard) == 0
}

type LeadNote struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Author    string `json:"author"`
	CreatedAt string `json:"createdAt"`
}

type Lead struct {
	ID            string        `json:"id"`
	Type          LeadType      `json:"type"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	Company       string        `json:"company"`
	Message       string        `json:"message"`
	Status        LeadStatus    `json:"status"`
	ProductID     string        `json:"productId"`
	ProductName   string        `json:"productName"`
	CollectionID  string        `json:"collectionId"`
	Customization Customization `json:"customization"`
	Source        string        `json:"source"`
	AssignedTo    string        `json:"assignedTo"`
	Notes         []LeadNote    `json:"notes"`
	CreatedAt     string        `json:"createdAt"`
	UpdatedAt     string        `json:"updatedAt"`
}

// MoodboardFolder is the storage folder public form uploads are written to.
const MoodboardFolder = "moodboards"

// IsMoodboardRef reports whether ref names an object in MoodboardFolder.
func IsMoodboardRef(ref string) bool {
	rest, ok := strings.CutPrefix(ref, MoodboardFolder+"/")
	return ok && rest != "" && !strings.Contains(rest, "..")
}

// StorageRefs lists the moodboard uploads owned by the lead. Refs outside
// MoodboardFolder are never reported, so deleting a lead cannot reach
// catalogue files.
func (l Lead) StorageRefs() []string {
	var refs []string
	for _, f := range l.Customization.Moodboard {
		if IsMoodboardRef(f.StorageRef) {
			refs = append(refs, f.StorageRef)
		}
	}
	return refs
}
