package request

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/flowquote/flowquote/internal/apperr"
	"github.com/flowquote/flowquote/internal/business"
	"github.com/flowquote/flowquote/internal/media"
	"github.com/flowquote/flowquote/internal/notify"
	"github.com/flowquote/flowquote/internal/validate"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=request
type Repository interface {
	CreateRequest(ctx context.Context, r *Request) error
	GetRequest(ctx context.Context, id uuid.UUID) (*Request, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, businessID uuid.UUID, status Status) error
	ListRequests(ctx context.Context, businessID uuid.UUID, filter ListFilter) ([]*Request, error)
	CountByStatus(ctx context.Context, businessID uuid.UUID) (map[Status]int, error)
}

// Businesses looks up the tenant a request is submitted to.
type Businesses interface {
	Get(ctx context.Context, id uuid.UUID) (*business.Business, error)
}

// Blobs stores uploaded request media.
type Blobs interface {
	UploadAll(ctx context.Context, purpose string, files []media.File) ([]string, error)
	RemoveQuietly(ctx context.Context, ref string)
}

type Recorder interface {
	IntakeSubmitted()
}

type Service struct {
	repo       Repository
	businesses Businesses
	blobs      Blobs
	notifier   notify.Notifier
	recorder   Recorder
}

func NewService(repo Repository, businesses Businesses, blobs Blobs, notifier notify.Notifier, recorder Recorder) *Service {
	return &Service{
		repo:       repo,
		businesses: businesses,
		blobs:      blobs,
		notifier:   notifier,
		recorder:   recorder,
	}
}

type SubmitParams struct {
	BusinessID    uuid.UUID
	ClientName    string `validate:"required" label:"Name"`
	ClientEmail   string `validate:"required,email" label:"Email"`
	ClientPhone   string `validate:"required" label:"Phone"`
	ClientAddress string `validate:"required" label:"Address"`
	ProblemDesc   string `validate:"min=10" label:"Problem description"`
	Files         []media.File
}

type ListFilter struct {
	Status *Status
}

// Submit records a new request from the public intake form. Files are stored
// before the record is written so a storage failure leaves nothing behind.
func (s *Service) Submit(ctx context.Context, params SubmitParams) (*Request, error) {
	params.ClientName = strings.TrimSpace(params.ClientName)
	params.ClientEmail = strings.TrimSpace(params.ClientEmail)
	params.ClientPhone = strings.TrimSpace(params.ClientPhone)
	params.ClientAddress = strings.TrimSpace(params.ClientAddress)
	params.ProblemDesc = strings.TrimSpace(params.ProblemDesc)

	if params.BusinessID == uuid.Nil {
		return nil, apperr.Validation("Business is required")
	}

	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	b, err := s.businesses.Get(ctx, params.BusinessID)
	if err != nil {
		return nil, err
	}

	refs := []string{}

	if len(params.Files) > 0 {
		refs, err = s.blobs.UploadAll(ctx, media.PurposeRequests, params.Files)
		if err != nil {
			return nil, err
		}
	}

	r := &Request{
		BusinessID:    b.ID,
		ClientName:    params.ClientName,
		ClientEmail:   params.ClientEmail,
		ClientPhone:   params.ClientPhone,
		ClientAddress: params.ClientAddress,
		ProblemDesc:   params.ProblemDesc,
		MediaRefs:     refs,
		Status:        StatusNew,
	}

	if err := s.repo.CreateRequest(ctx, r); err != nil {
		for _, ref := range refs {
			s.blobs.RemoveQuietly(ctx, ref)
		}

		return nil, apperr.Transient("Failed to save request", err)
	}

	if s.recorder != nil {
		s.recorder.IntakeSubmitted()
	}

	s.notifier.Notify(notify.Event{
		Kind:     notify.KindRequestCreated,
		Business: notify.Business{ID: b.ID, Name: b.Name, Email: b.Email},
		Request:  Summary(r),
	})

	return r, nil
}

// GetOwned returns the request when it belongs to businessID. A request of
// another business is reported as not found.
func (s *Service) GetOwned(ctx context.Context, id, businessID uuid.UUID) (*Request, error) {
	r, err := s.repo.GetRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	if r.BusinessID != businessID {
		return nil, ErrNotFound
	}

	return r, nil
}

// SetStatus overwrites the status of an owned request. No transition table
// is enforced and no notification is sent.
func (s *Service) SetStatus(ctx context.Context, id, businessID uuid.UUID, status Status) (*Request, error) {
	if !status.Valid() {
		return nil, apperr.Validation("Invalid status")
	}

	if err := s.repo.UpdateStatus(ctx, id, businessID, status); err != nil {
		return nil, err
	}

	return s.GetOwned(ctx, id, businessID)
}

// ParseFilter turns the dashboard status query into a filter; "" and "ALL"
// mean no filter.
func ParseFilter(status string) (ListFilter, error) {
	status = strings.ToUpper(strings.TrimSpace(status))
	if status == "" || status == "ALL" {
		return ListFilter{}, nil
	}

	st := Status(status)
	if !st.Valid() {
		return ListFilter{}, apperr.Validation("Invalid status filter")
	}

	return ListFilter{Status: &st}, nil
}

// List returns the business's requests, newest first.
func (s *Service) List(ctx context.Context, businessID uuid.UUID, filter ListFilter) ([]*Request, error) {
	return s.repo.ListRequests(ctx, businessID, filter)
}

// Stats counts requests per status; every status is present in the result.
func (s *Service) Stats(ctx context.Context, businessID uuid.UUID) (map[Status]int, error) {
	counts, err := s.repo.CountByStatus(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("count requests: %w", err)
	}

	out := make(map[Status]int, len(Statuses))
	for _, st := range Statuses {
		out[st] = counts[st]
	}

	return out, nil
}

// Summary is the notification view of a request.
func Summary(r *Request) notify.Request {
	return notify.Request{
		ID:            r.ID,
		ClientName:    r.ClientName,
		ClientEmail:   r.ClientEmail,
		ClientPhone:   r.ClientPhone,
		ClientAddress: r.ClientAddress,
		ProblemDesc:   r.ProblemDesc,
	}
}
