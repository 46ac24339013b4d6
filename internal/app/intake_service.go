package app

import (
	"context"
	"path/filepath"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"rider_slip_service/internal/domain/artifact"
	"rider_slip_service/internal/domain/commission"
	"rider_slip_service/internal/domain/dedup"
	"rider_slip_service/internal/domain/slip"
	"rider_slip_service/internal/domain/week"
)

// IntakeRequest carries everything a branch session supplies for one slip.
// Either WeekLabel or WeekOf must be set; when only WeekOf is given the
// containing reporting week is resolved from it.
type IntakeRequest struct {
	BranchCode    string
	RiderID       int64
	Category      slip.Category
	Quantity      int
	TransactionID string
	Artifact      []byte
	ArtifactName  string
	ManagerName   string
	WeekLabel     string
	WeekOf        time.Time
}

// IntakeService validates and stages slip entries. It never persists the
// staged entry itself and never retries collaborator failures; both are the
// caller's responsibility.
type IntakeService struct {
	registry    dedup.Registry
	store       artifact.Store
	rates       commission.RateTable
	scopePolicy dedup.ScopePolicy
	weekWindow  int
	logger      *logrus.Entry
	now         func() time.Time
}

func NewIntakeService(
	registry dedup.Registry,
	store artifact.Store,
	rates commission.RateTable,
	scopePolicy dedup.ScopePolicy,
	weekWindow int,
	logger *logrus.Entry,
) *IntakeService {
	return &IntakeService{
		registry:    registry,
		store:       store,
		rates:       rates,
		scopePolicy: scopePolicy,
		weekWindow:  weekWindow,
		logger:      logger,
		now:         time.Now,
	}
}

// Intake validates the request, checks the artifact for duplicates, hands
// the artifact to the store, records its fingerprint, computes the
// commission, and returns a staged slip entry. Validation short-circuits on
// the first failure. The fingerprint is only recorded after the artifact has
// been stored, so the registry never refers to an artifact that failed to
// persist.
func (s *IntakeService) Intake(ctx context.Context, req IntakeRequest) (*slip.Entry, error) {
	if err := commission.ValidateQuantity(req.Quantity); err != nil {
		return nil, err
	}
	if err := commission.ValidateTransactionID(req.Category, req.TransactionID); err != nil {
		return nil, err
	}
	if len(req.Artifact) == 0 {
		return nil, ErrMissingArtifact
	}

	fp := slip.ComputeFingerprint(req.Artifact)
	scope := dedup.Scope{BranchCode: req.BranchCode, RiderID: req.RiderID}
	scopeKey := scope.Key(s.scopePolicy)

	seen, err := s.registry.Seen(ctx, scopeKey, fp)
	if err != nil {
		return nil, &RegistryError{Err: err}
	}
	if seen {
		return nil, ErrDuplicateArtifact
	}

	// The week label is resolved before the artifact is stored: failing
	// afterwards would leave a permanent fingerprint for a slip that was
	// never staged.
	weekLabel, err := s.resolveWeek(req)
	if err != nil {
		return nil, err
	}

	storedRef, err := s.store.Store(ctx, req.Artifact, s.scopeHint(req), s.artifactFilename(fp, req.ArtifactName))
	if err != nil {
		return nil, &StorageError{Err: err}
	}

	if err := s.registry.Record(ctx, scopeKey, fp); err != nil {
		// The artifact was already persisted; it stays behind for manual
		// cleanup and must be traceable from the logs.
		s.logger.WithFields(logrus.Fields{
			"scope_key":   scopeKey,
			"fingerprint": fp.Hex(),
			"stored_ref":  storedRef,
		}).WithError(err).Warn("Orphaned artifact: fingerprint record failed after store")

		if err == dedup.ErrAlreadyRecorded {
			return nil, ErrDuplicateArtifact
		}
		return nil, &RegistryError{Err: err}
	}

	amount, err := commission.Calculate(s.rates, req.Category, req.Quantity)
	if err != nil {
		return nil, err
	}

	entry := &slip.Entry{
		BranchCode:    req.BranchCode,
		RiderID:       req.RiderID,
		Category:      req.Category,
		Quantity:      req.Quantity,
		TransactionID: req.TransactionID,
		Fingerprint:   fp,
		StoredRef:     string(storedRef),
		ManagerName:   req.ManagerName,
		WeekLabel:     weekLabel,
		Commission:    amount,
		Status:        slip.StatusStaged,
		SubmittedAt:   s.now(),
	}

	s.logger.WithFields(logrus.Fields{
		"branch_code": entry.BranchCode,
		"rider_id":    entry.RiderID,
		"week_label":  entry.WeekLabel,
		"fingerprint": fp.Hex(),
	}).Info("Slip staged")

	return entry, nil
}

// RecentWeeks exposes the open reporting weeks for display.
func (s *IntakeService) RecentWeeks() []week.Range {
	return week.Recent(s.now(), s.weekWindow)
}

// CommissionPreview computes the commission a submission would earn.
func (s *IntakeService) CommissionPreview(category slip.Category, quantity int) (int64, error) {
	return commission.Calculate(s.rates, category, quantity)
}

// SeenArtifact reports whether the artifact bytes were already accepted for
// the (branch, rider) scope.
func (s *IntakeService) SeenArtifact(ctx context.Context, branchCode string, riderID int64, data []byte) (bool, error) {
	scope := dedup.Scope{BranchCode: branchCode, RiderID: riderID}
	return s.registry.Seen(ctx, scope.Key(s.scopePolicy), slip.ComputeFingerprint(data))
}

func (s *IntakeService) resolveWeek(req IntakeRequest) (string, error) {
	label := req.WeekLabel
	if label == "" {
		if req.WeekOf.IsZero() {
			return "", ErrInvalidWeek
		}
		label = week.Containing(req.WeekOf).Label()
	}
	for _, r := range week.Recent(s.now(), s.weekWindow) {
		if r.Label() == label {
			return label, nil
		}
	}
	return "", ErrInvalidWeek
}

func (s *IntakeService) scopeHint(req IntakeRequest) string {
	return filepath.Join(req.BranchCode, strconv.FormatInt(req.RiderID, 10))
}

// artifactFilename names the stored copy after its content hash, keeping the
// original extension for viewers.
func (s *IntakeService) artifactFilename(fp slip.Fingerprint, original string) string {
	ext := filepath.Ext(original)
	return fp.Hex() + ext
}
