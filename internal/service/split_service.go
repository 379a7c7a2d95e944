package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/splitit/splitit/internal/auth"
	"github.com/splitit/splitit/internal/export"
	"github.com/splitit/splitit/internal/metrics"
	"github.com/splitit/splitit/internal/middleware"
	"github.com/splitit/splitit/internal/models"
	"github.com/splitit/splitit/internal/share"
	"github.com/splitit/splitit/internal/storage"
	"github.com/splitit/splitit/pkg/api"
	"github.com/splitit/splitit/pkg/api/apiconnect"
)

var (
	ErrSharingDisabled    = errors.New("share links are not configured")
	ErrPublishingDisabled = errors.New("summary publishing is not configured")

	errBillIDRequired   = errors.New("bill_id required")
	errAssignmentFields = errors.New("item_id and person_id required")
)

// Publisher stores a rendered summary and returns where it can be fetched.
type Publisher interface {
	Publish(ctx context.Context, name string, body []byte, contentType string) (string, error)
}

// SplitService implements the Connect SplitService
type SplitService struct {
	apiconnect.UnimplementedSplitServiceHandler
	store     storage.Store
	signer    *share.Signer
	publisher Publisher
	metrics   *metrics.Metrics
	publicURL string
}

// Option configures optional SplitService collaborators.
type Option func(*SplitService)

// WithShareSigner enables ShareBill and GetSharedBill.
func WithShareSigner(signer *share.Signer) Option {
	return func(s *SplitService) { s.signer = signer }
}

// WithPublisher enables PublishSummary.
func WithPublisher(p Publisher) Option {
	return func(s *SplitService) { s.publisher = p }
}

// WithMetrics records split and storage metrics on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *SplitService) { s.metrics = m }
}

// WithPublicURL sets the base URL share links point at.
func WithPublicURL(url string) Option {
	return func(s *SplitService) { s.publicURL = strings.TrimRight(url, "/") }
}

// NewSplitService creates a new SplitService with the given storage backend.
func NewSplitService(store storage.Store, opts ...Option) *SplitService {
	s := &SplitService{store: store}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// toConnectError maps domain errors onto Connect codes.
func toConnectError(err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound),
		errors.Is(err, models.ErrItemNotFound),
		errors.Is(err, models.ErrPersonNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, auth.ErrPasscodeRequired),
		errors.Is(err, auth.ErrPasscodeMismatch):
		return connect.NewError(connect.CodePermissionDenied, err)
	case errors.Is(err, share.ErrInvalidToken),
		errors.Is(err, share.ErrMissingToken):
		return connect.NewError(connect.CodeUnauthenticated, err)
	case errors.Is(err, ErrSharingDisabled),
		errors.Is(err, ErrPublishingDisabled):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

func invalidArgument(err error) error {
	return connect.NewError(connect.CodeInvalidArgument, err)
}

// split computes the response split and records it.
func (s *SplitService) split(bill *models.Bill) *api.Split {
	out := buildSplit(bill)
	s.metrics.ObserveSplit(bill.SplitMode.String(), len(bill.People), len(out.UnassignedItems))
	if len(out.UnassignedItems) > 0 {
		slog.Warn("Itemized split has unassigned items",
			"bill_id", bill.ID,
			"items", out.UnassignedItems,
			"unaccounted", out.Unaccounted.String(),
		)
	}
	return out
}

// loadForEdit fetches a bill and checks the passcode presented in ctx.
func (s *SplitService) loadForEdit(ctx context.Context, billID string) (*models.Bill, error) {
	if billID == "" {
		return nil, invalidArgument(errBillIDRequired)
	}
	bill, err := s.store.GetBill(ctx, billID)
	s.metrics.ObserveBillOp("get", err)
	if err != nil {
		return nil, toConnectError(err)
	}
	if err := auth.CheckPasscode(bill.PasscodeHash, middleware.GetPasscode(ctx)); err != nil {
		slog.Warn("Passcode check failed", "bill_id", billID, "error", err)
		return nil, toConnectError(err)
	}
	return bill, nil
}

// editBill checks the passcode in ctx and applies fn to the stored bill,
// both inside one store transaction.
func (s *SplitService) editBill(ctx context.Context, billID string, fn func(*models.Bill) error) (*models.Bill, error) {
	passcode := middleware.GetPasscode(ctx)
	bill, err := s.store.ModifyBill(ctx, billID, func(b *models.Bill) error {
		if err := auth.CheckPasscode(b.PasscodeHash, passcode); err != nil {
			slog.Warn("Passcode check failed", "bill_id", billID, "error", err)
			return err
		}
		return fn(b)
	})
	s.metrics.ObserveBillOp("update", err)
	if err != nil {
		return nil, toConnectError(err)
	}
	return bill, nil
}

// CalculateSplit computes a split without storing anything.
func (s *SplitService) CalculateSplit(ctx context.Context, req *connect.Request[api.CalculateSplitRequest]) (*connect.Response[api.CalculateSplitResponse], error) {
	bill, err := billFromAPI(req.Msg.Bill)
	if err != nil {
		slog.Error("CalculateSplit validation failed", "error", err)
		return nil, invalidArgument(err)
	}
	for i, item := range bill.Items {
		slog.Debug("Processing item",
			"index", i+1,
			"name", item.Name,
			"price", item.Price.String(),
			"assigned_to", item.AssignedTo,
		)
	}

	return connect.NewResponse(&api.CalculateSplitResponse{Split: s.split(bill)}), nil
}

// CreateBill creates a new bill and persists it to storage.
func (s *SplitService) CreateBill(ctx context.Context, req *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error) {
	bill, err := billFromAPI(req.Msg.Bill)
	if err != nil {
		slog.Error("CreateBill validation failed", "error", err)
		return nil, invalidArgument(err)
	}
	// The store assigns a fresh ID.
	bill.ID = ""

	bill.PasscodeHash, err = auth.HashPasscode(req.Msg.Passcode)
	if err != nil {
		if errors.Is(err, auth.ErrWeakPasscode) || errors.Is(err, auth.ErrPasscodeTooLong) {
			return nil, invalidArgument(err)
		}
		return nil, toConnectError(err)
	}

	err = s.store.CreateBill(ctx, bill)
	s.metrics.ObserveBillOp("create", err)
	if err != nil {
		slog.Error("CreateBill failed", "error", err)
		return nil, toConnectError(err)
	}
	slog.Info("Bill created", "bill_id", bill.ID, "title", bill.Title, "protected", bill.PasscodeHash != "")

	return connect.NewResponse(&api.CreateBillResponse{
		Bill:  billToAPI(bill),
		Split: s.split(bill),
	}), nil
}

// GetBill retrieves a bill by ID and recalculates its split.
func (s *SplitService) GetBill(ctx context.Context, req *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error) {
	if req.Msg.BillID == "" {
		return nil, invalidArgument(errBillIDRequired)
	}
	bill, err := s.store.GetBill(ctx, req.Msg.BillID)
	s.metrics.ObserveBillOp("get", err)
	if err != nil {
		slog.Error("GetBill failed", "bill_id", req.Msg.BillID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GetBillResponse{
		Bill:  billToAPI(bill),
		Split: s.split(bill),
	}), nil
}

// UpdateBill replaces an existing bill's contents. The passcode and creation
// time are kept from the stored bill.
func (s *SplitService) UpdateBill(ctx context.Context, req *connect.Request[api.UpdateBillRequest]) (*connect.Response[api.UpdateBillResponse], error) {
	billID := req.Msg.GetBillID()
	if billID == "" {
		return nil, invalidArgument(errBillIDRequired)
	}
	next, err := billFromAPI(req.Msg.Bill)
	if err != nil {
		slog.Error("UpdateBill validation failed", "bill_id", billID, "error", err)
		return nil, invalidArgument(err)
	}

	bill, err := s.editBill(ctx, billID, func(b *models.Bill) error {
		next.ID = b.ID
		next.PasscodeHash = b.PasscodeHash
		next.CreatedAt = b.CreatedAt
		if next.Title == "" {
			next.Title = b.Title
		}
		*b = *next
		return nil
	})
	if err != nil {
		slog.Error("UpdateBill failed", "bill_id", billID, "error", err)
		return nil, err
	}

	return connect.NewResponse(&api.UpdateBillResponse{
		Bill:  billToAPI(bill),
		Split: s.split(bill),
	}), nil
}

// DeleteBill deletes a bill.
func (s *SplitService) DeleteBill(ctx context.Context, req *connect.Request[api.DeleteBillRequest]) (*connect.Response[api.DeleteBillResponse], error) {
	if _, err := s.loadForEdit(ctx, req.Msg.BillID); err != nil {
		return nil, err
	}

	err := s.store.DeleteBill(ctx, req.Msg.BillID)
	s.metrics.ObserveBillOp("delete", err)
	if err != nil {
		slog.Error("DeleteBill failed", "bill_id", req.Msg.BillID, "error", err)
		return nil, toConnectError(err)
	}
	slog.Info("Bill deleted", "bill_id", req.Msg.BillID)

	return connect.NewResponse(&api.DeleteBillResponse{}), nil
}

// ListBills returns summaries of all bills, newest first.
func (s *SplitService) ListBills(ctx context.Context, req *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error) {
	bills, err := s.store.ListBills(ctx)
	s.metrics.ObserveBillOp("list", err)
	if err != nil {
		slog.Error("ListBills failed", "error", err)
		return nil, toConnectError(err)
	}

	summaries := make([]*api.BillSummary, len(bills))
	for i, bill := range bills {
		summaries[i] = billSummaryToAPI(bill)
	}
	return connect.NewResponse(&api.ListBillsResponse{Bills: summaries}), nil
}

// ToggleAssignment adds the person to the item's assignees, or removes them
// if already assigned.
func (s *SplitService) ToggleAssignment(ctx context.Context, req *connect.Request[api.ToggleAssignmentRequest]) (*connect.Response[api.ToggleAssignmentResponse], error) {
	if req.Msg.ItemID == "" || req.Msg.PersonID == "" {
		return nil, invalidArgument(errAssignmentFields)
	}
	if req.Msg.BillID == "" {
		return nil, invalidArgument(errBillIDRequired)
	}

	var assigned bool
	bill, err := s.editBill(ctx, req.Msg.BillID, func(b *models.Bill) error {
		var err error
		assigned, err = b.ToggleAssignment(req.Msg.ItemID, req.Msg.PersonID)
		return err
	})
	if err != nil {
		slog.Error("ToggleAssignment failed", "bill_id", req.Msg.BillID, "error", err)
		return nil, err
	}
	slog.Debug("Assignment toggled",
		"bill_id", bill.ID,
		"item_id", req.Msg.ItemID,
		"person_id", req.Msg.PersonID,
		"assigned", assigned,
	)

	return connect.NewResponse(&api.ToggleAssignmentResponse{
		Assigned: assigned,
		Bill:     billToAPI(bill),
		Split:    s.split(bill),
	}), nil
}

// ShareBill issues a read-only share link for a bill.
func (s *SplitService) ShareBill(ctx context.Context, req *connect.Request[api.ShareBillRequest]) (*connect.Response[api.ShareBillResponse], error) {
	if s.signer == nil {
		return nil, toConnectError(ErrSharingDisabled)
	}
	if req.Msg.BillID == "" {
		return nil, invalidArgument(errBillIDRequired)
	}
	bill, err := s.store.GetBill(ctx, req.Msg.BillID)
	s.metrics.ObserveBillOp("get", err)
	if err != nil {
		return nil, toConnectError(err)
	}

	token, err := s.signer.Issue(bill.ID)
	if err != nil {
		slog.Error("ShareBill failed", "bill_id", bill.ID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.ShareBillResponse{
		Token: token,
		URL:   s.ShareURL(token),
		Text:  export.Text(export.NewSummary(bill)),
	}), nil
}

// ShareURL is the public page for a share token.
func (s *SplitService) ShareURL(token string) string {
	return s.publicURL + "/s/" + token
}

// LoadShared resolves a share token to its bill.
func (s *SplitService) LoadShared(ctx context.Context, token string) (*models.Bill, error) {
	if s.signer == nil {
		return nil, ErrSharingDisabled
	}
	billID, err := s.signer.Verify(token)
	if err != nil {
		return nil, err
	}
	bill, err := s.store.GetBill(ctx, billID)
	s.metrics.ObserveBillOp("get", err)
	if err != nil {
		return nil, fmt.Errorf("shared bill %s: %w", billID, err)
	}
	return bill, nil
}

// GetSharedBill returns a bill through a share token, without a passcode.
func (s *SplitService) GetSharedBill(ctx context.Context, req *connect.Request[api.GetSharedBillRequest]) (*connect.Response[api.GetSharedBillResponse], error) {
	bill, err := s.LoadShared(ctx, req.Msg.Token)
	if err != nil {
		slog.Warn("GetSharedBill failed", "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GetSharedBillResponse{
		Bill:  billToAPI(bill),
		Split: s.split(bill),
		Text:  export.Text(export.NewSummary(bill)),
	}), nil
}

// PublishSummary renders the bill's PDF summary and uploads it.
func (s *SplitService) PublishSummary(ctx context.Context, req *connect.Request[api.PublishSummaryRequest]) (*connect.Response[api.PublishSummaryResponse], error) {
	if s.publisher == nil {
		return nil, toConnectError(ErrPublishingDisabled)
	}
	bill, err := s.loadForEdit(ctx, req.Msg.BillID)
	if err != nil {
		return nil, err
	}

	pdf, err := export.PDF(export.NewSummary(bill))
	if err != nil {
		slog.Error("PublishSummary render failed", "bill_id", bill.ID, "error", err)
		return nil, toConnectError(err)
	}
	url, err := s.publisher.Publish(ctx, bill.ID+".pdf", pdf, export.PDFContentType)
	if err != nil {
		slog.Error("PublishSummary upload failed", "bill_id", bill.ID, "error", err)
		return nil, toConnectError(err)
	}
	slog.Info("Summary published", "bill_id", bill.ID, "url", url)

	return connect.NewResponse(&api.PublishSummaryResponse{URL: url}), nil
}
