package get_availability

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/availability"
)

// UseCase use case получения доступности мастеров за период
type UseCase struct {
	availabilityRepo AvailabilityRepository
	txManager        TransactionManager
	logger           Logger
	maxRangeDays     int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(availabilityRepo AvailabilityRepository, txManager TransactionManager, logger Logger, maxRangeDays int) *UseCase {
	return &UseCase{
		availabilityRepo: availabilityRepo,
		txManager:        txManager,
		logger:           logger,
		maxRangeDays:     maxRangeDays,
	}
}

// Execute выполняет use case
// Дни без окон в ответ не попадают: отсутствие окна означает "недоступен"
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	req.From, req.To = domain.DateOnly(req.From), domain.DateOnly(req.To)

	uc.logger.Info("GetAvailability: from=%s, to=%s, staff=%v",
		req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat), req.StaffIDs)

	if err := validateRequest(req, uc.maxRangeDays); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// Окна читаются в read-only транзакции: весь период из одного снимка
	var windows []domain.AvailabilityWindow
	err := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		windows, err = uc.availabilityRepo.Fetch(txCtx, domain.AvailabilityFilter{
			From:     req.From,
			To:       req.To,
			StaffIDs: req.StaffIDs,
		})
		return err
	})
	if err != nil {
		uc.logger.Error("GetAvailability: failed to fetch windows: %v", err)
		return nil, fmt.Errorf("%w: failed to fetch windows: %v", ErrInternal, err)
	}

	idx := availability.NewIndex(windows)

	staffIDs := req.StaffIDs
	if len(staffIDs) == 0 {
		staffIDs = idx.StaffIDs()
	}

	resp := &Response{From: req.From, To: req.To, Days: make([]StaffDay, 0)}
	for _, staffID := range staffIDs {
		for d := req.From; !d.After(req.To); d = d.AddDate(0, 0, 1) {
			if !idx.HasWindows(staffID, d) {
				continue
			}
			resp.Days = append(resp.Days, buildDay(idx, staffID, d))
		}
	}

	uc.logger.Info("GetAvailability: %d windows, %d staff days", len(windows), len(resp.Days))
	return resp, nil
}
