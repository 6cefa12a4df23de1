package usecase

import (
	"context"
	"encoding/csv"
	"io"
	"strings"

	"github.com/google/uuid"

	"rugstore/internal/domain/entity"
	"rugstore/internal/domain/raw"
	"rugstore/internal/domain/repository"
	"rugstore/internal/domain/result"
	"rugstore/internal/domain/service"
	"rugstore/internal/infrastructure/cache"
	"rugstore/internal/transform"
	"rugstore/pkg/errors"
	"rugstore/pkg/logger"
)

// LeadLister is the read side used by exports.
type LeadLister interface {
	All(ctx context.Context, filter repository.LeadFilter) result.Result[[]entity.Lead]
}

type LeadUseCase struct {
	mutations
	leadRepo    repository.LeadRepository
	productRepo repository.ProductRepository
	lister      LeadLister
	notifier    service.LeadNotifier
	transformer *transform.Transformer
}

func NewLeadUseCase(
	leadRepo repository.LeadRepository,
	productRepo repository.ProductRepository,
	lister LeadLister,
	notifier service.LeadNotifier,
	transformer *transform.Transformer,
	storage service.FileStorage,
	c cache.Cache,
	log logger.Logger,
) *LeadUseCase {
	return &LeadUseCase{
		mutations:   mutations{cache: c, storage: storage, log: log.With("component", "leads")},
		leadRepo:    leadRepo,
		productRepo: productRepo,
		lister:      lister,
		notifier:    notifier,
		transformer: transformer,
	}
}

type CustomizationInput struct {
	PreferredSize string                `json:"preferredSize" validate:"max=120"`
	Materials     []string              `json:"materials"`
	Colors        string                `json:"colors" validate:"max=500"`
	Budget        string                `json:"budget" validate:"max=120"`
	Moodboard     []entity.UploadedFile `json:"moodboard" validate:"max=10"`
}

type LeadInput struct {
	Name          string              `json:"name" validate:"required,max=120"`
	Email         string              `json:"email" validate:"required,email,max=254"`
	Phone         string              `json:"phone" validate:"max=40"`
	Company       string              `json:"company" validate:"max=160"`
	Message       string              `json:"message" validate:"max=5000"`
	ProductID     string              `json:"productId"`
	CollectionID  string              `json:"collectionId"`
	Customization *CustomizationInput `json:"customization"`
	Source        string              `json:"source" validate:"max=200"`
}

// SubmitLead stores a public form submission. It needs no principal.
func (uc *LeadUseCase) SubmitLead(ctx context.Context, leadType entity.LeadType, input LeadInput) (*entity.Lead, error) {
	if !leadType.Valid() {
		return nil, errors.BadRequest("Unknown enquiry type", nil)
	}

	lead := &entity.Lead{
		Type:         leadType,
		Name:         strings.TrimSpace(input.Name),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:        strings.TrimSpace(input.Phone),
		Company:      strings.TrimSpace(input.Company),
		Message:      strings.TrimSpace(input.Message),
		Status:       entity.LeadStatusNew,
		ProductID:    strings.TrimSpace(input.ProductID),
		CollectionID: strings.TrimSpace(input.CollectionID),
		Source:       strings.TrimSpace(input.Source),
		Notes:        []entity.LeadNote{},
	}
	if c := input.Customization; c != nil {
		lead.Customization = entity.Customization{
			PreferredSize: strings.TrimSpace(c.PreferredSize),
			Materials:     trimAll(c.Materials),
			Colors:        strings.TrimSpace(c.Colors),
			Budget:        strings.TrimSpace(c.Budget),
			Moodboard:     uc.moodboard(c.Moodboard),
		}
	}

	if fields := validateLead(lead); len(fields) > 0 {
		return nil, errors.Validation(fields)
	}

	if lead.ProductID != "" {
		r, err := uc.productRepo.GetByID(ctx, lead.ProductID)
		switch {
		case errors.Is(err, "NOT_FOUND"):
			return nil, errors.Validation(map[string]string{"productId": "Unknown product"})
		case err != nil:
			uc.log.Warn("product lookup for enquiry failed", "productId", lead.ProductID, "error", err)
		default:
			lead.ProductName = uc.transformer.Product(r).Name
		}
	}

	if err := uc.leadRepo.Create(ctx, lead); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, cache.TagLeads)
	uc.log.Info("lead submitted", "id", lead.ID, "type", lead.Type)

	saved := uc.normalized(lead)
	if uc.notifier != nil {
		uc.notifier.LeadCreated(*saved)
	}
	return saved, nil
}

// moodboard keeps only files this system uploaded for the customize form and
// rewrites their URLs from the storage ref. A zero entry marks a rejected file.
func (uc *LeadUseCase) moodboard(files []entity.UploadedFile) []entity.UploadedFile {
	out := make([]entity.UploadedFile, len(files))
	for i, f := range files {
		ref := strings.TrimSpace(f.StorageRef)
		if !entity.IsMoodboardRef(ref) {
			uc.log.Warn("rejected moodboard reference", "ref", ref)
			out[i] = entity.UploadedFile{}
			continue
		}
		f.StorageRef = ref
		if uc.storage != nil {
			f.URL = uc.storage.URL(ref)
		}
		f.Name = strings.TrimSpace(f.Name)
		out[i] = f
	}
	return out
}

func validateLead(l *entity.Lead) map[string]string {
	fields := map[string]string{}
	for _, f := range l.Customization.Moodboard {
		if f.StorageRef == "" {
			fields["moodboard"] = "Attachments must be uploaded through the moodboard form"
			break
		}
	}
	if l.Name == "" {
		fields["name"] = "Name is required"
	}
	if l.Email == "" {
		fields["email"] = "Email is required"
	}
	switch l.Type {
	case entity.LeadTypeProductEnquiry:
		if l.ProductID == "" {
			fields["productId"] = "Product is required for an enquiry"
		}
	case entity.LeadTypeTrade:
		if l.Company == "" {
			fields["company"] = "Company is required for trade enquiries"
		}
	case entity.LeadTypeCustomize:
		if l.Customization.IsZero() && l.Message == "" {
			fields["customization"] = "Tell us about the rug you have in mind"
		}
	}
	return fields
}

// UpdateStatus moves a lead to any known status; the pipeline is not enforced.
func (uc *LeadUseCase) UpdateStatus(ctx context.Context, id, status string) (*entity.Lead, error) {
	next := entity.LeadStatus(strings.ToLower(strings.TrimSpace(status)))
	return uc.patch(ctx, id, func(l *entity.Lead, _ *entity.Principal) error {
		if !next.Valid() {
			return errors.Validation(map[string]string{"status": "Unknown status " + status})
		}
		l.Status = next
		return nil
	})
}

func (uc *LeadUseCase) AddNote(ctx context.Context, id, text string) (*entity.Lead, error) {
	text = strings.TrimSpace(text)
	return uc.patch(ctx, id, func(l *entity.Lead, p *entity.Principal) error {
		if text == "" {
			return errors.Validation(map[string]string{"text": "Note cannot be empty"})
		}
		author := p.Email
		if author == "" {
			author = p.UID
		}
		l.Notes = append(l.Notes, entity.LeadNote{
			ID:        uuid.NewString(),
			Text:      text,
			Author:    author,
			CreatedAt: uc.transformer.Now(),
		})
		return nil
	})
}

// Assign hands the lead to a team member; an empty assignee unassigns it.
func (uc *LeadUseCase) Assign(ctx context.Context, id, assignee string) (*entity.Lead, error) {
	return uc.patch(ctx, id, func(l *entity.Lead, _ *entity.Principal) error {
		l.AssignedTo = strings.TrimSpace(assignee)
		return nil
	})
}

// DeleteLead removes the lead and its moodboard uploads.
func (uc *LeadUseCase) DeleteLead(ctx context.Context, id string) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}

	lead, err := uc.get(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.leadRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx, cache.TagLeads)
	uc.deleteFiles(ctx, lead.StorageRefs()...)
	uc.log.Info("lead deleted", "id", id)
	return nil
}

var csvHeader = []string{
	"id", "createdAt", "type", "status", "name", "email", "phone", "company",
	"productName", "preferredSize", "materials", "assignedTo", "source", "message",
}

// ExportCSV writes matching leads, newest first, ignoring paging.
func (uc *LeadUseCase) ExportCSV(ctx context.Context, w io.Writer, filter repository.LeadFilter) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}

	res := uc.lister.All(ctx, filter)
	leads, ok := res.Value()
	if !ok {
		return errors.Unavailable(res.Message(), nil)
	}

	out := csv.NewWriter(w)
	if err := out.Write(csvHeader); err != nil {
		return err
	}
	for _, l := range leads {
		record := []string{
			l.ID, l.CreatedAt, string(l.Type), string(l.Status), l.Name, l.Email, l.Phone, l.Company,
			l.ProductName, l.Customization.PreferredSize, strings.Join(l.Customization.Materials, "; "),
			l.AssignedTo, l.Source, l.Message,
		}
		if err := out.Write(record); err != nil {
			return err
		}
	}
	out.Flush()
	return out.Error()
}

func (uc *LeadUseCase) patch(ctx context.Context, id string, change func(*entity.Lead, *entity.Principal) error) (*entity.Lead, error) {
	principal, err := requireAdmin(ctx)
	if err != nil {
		return nil, err
	}

	lead, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := change(&lead, principal); err != nil {
		return nil, err
	}
	if err := uc.leadRepo.Update(ctx, &lead); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, cache.TagLeads)
	return uc.normalized(&lead), nil
}

func (uc *LeadUseCase) get(ctx context.Context, id string) (entity.Lead, error) {
	r, err := uc.leadRepo.GetByID(ctx, id)
	if err != nil {
		return entity.Lead{}, err
	}
	return uc.transformer.Lead(r), nil
}

func (uc *LeadUseCase) normalized(l *entity.Lead) *entity.Lead {
	safe := uc.transformer.Lead(raw.DecodeLead(l.ID, transform.LeadDocument(*l)))
	return &safe
}
