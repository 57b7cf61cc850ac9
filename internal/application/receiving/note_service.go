package receiving

import (
	"context"
	"time"

	appnumbering "github.com/erp/backoffice/internal/application/numbering"
	"github.com/erp/backoffice/internal/domain/numbering"
	"github.com/erp/backoffice/internal/domain/receiving"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// NoteService handles receiving note business operations. Completion is the
// workflow's one irreversible step: it validates every line against the
// purchase order's pending quantities under row locks, writes the stock
// ledger and the received aggregates in the same transaction, and publishes
// the completion event only after that transaction committed.
type NoteService struct {
	txScope        TransactionScope
	noteRepo       receiving.NoteRepository
	sequencer      *appnumbering.Sequencer
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
	now            func() time.Time
}

// NewNoteService creates a new NoteService
func NewNoteService(
	txScope TransactionScope,
	noteRepo receiving.NoteRepository,
	sequencer *appnumbering.Sequencer,
	logger *zap.Logger,
) *NoteService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NoteService{
		txScope:   txScope,
		noteRepo:  noteRepo,
		sequencer: sequencer,
		logger:    logger,
		now:       time.Now,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *NoteService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetClock overrides the completion clock, for tests
func (s *NoteService) SetClock(now func() time.Time) {
	s.now = now
}

// CreateNote creates a draft receiving note against a purchase order. The
// document number is allocated inside the same transaction that persists the
// note, with the same collision retry as purchase orders.
func (s *NoteService) CreateNote(ctx context.Context, organizationID uuid.UUID, req CreateNoteRequest) (*NoteResponse, error) {
	docScope := shared.NewDocumentScope(organizationID)
	if req.CompanyID != nil {
		docScope = shared.NewCompanyScope(organizationID, *req.CompanyID)
	}

	note, err := receiving.NewReceivingNote(docScope, req.PurchaseOrderID, req.LocationID, req.Date)
	if err != nil {
		return nil, err
	}

	numScope, err := numbering.NewScope(numbering.DocumentTypeGoodsReceivedNote, docScope)
	if err != nil {
		return nil, err
	}

	_, err = s.sequencer.Allocate(ctx, numScope,
		func(ctx context.Context) (int64, error) {
			return s.noteRepo.CurrentMaxNumber(ctx, docScope)
		},
		func(allocation appnumbering.Allocation) error {
			note.AssignNumber(allocation.Number, allocation.Prefix)
			note.Lines = nil
			return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
				order, err := repos.OrderRepo().FindByIDForOrganization(ctx, organizationID, req.PurchaseOrderID)
				if err != nil {
					return err
				}
				for _, lineReq := range req.Lines {
					if err := s.attachLine(ctx, repos, note, order.ID, lineReq); err != nil {
						return err
					}
				}
				return repos.NoteRepo().Save(ctx, note)
			})
		},
	)
	if err != nil {
		return nil, err
	}

	s.logger.Info("receiving note created",
		zap.String("note_id", note.ID.String()),
		zap.String("document_number", note.DocumentNumber()),
		zap.String("purchase_order_id", note.PurchaseOrderID.String()))

	return ToNoteResponse(note), nil
}

// GetNote retrieves a receiving note with its lines
func (s *NoteService) GetNote(ctx context.Context, organizationID, noteID uuid.UUID) (*NoteResponse, error) {
	note, err := s.noteRepo.FindByIDForOrganization(ctx, organizationID, noteID)
	if err != nil {
		return nil, err
	}
	return ToNoteResponse(note), nil
}

// AddLine adds a line to a draft note
func (s *NoteService) AddLine(ctx context.Context, organizationID, noteID uuid.UUID, req CreateNoteLineRequest) (*NoteResponse, error) {
	var note *receiving.ReceivingNote
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		note, err = repos.NoteRepo().FindByIDForOrganization(ctx, organizationID, noteID)
		if err != nil {
			return err
		}
		if err := s.attachLine(ctx, repos, note, note.PurchaseOrderID, req); err != nil {
			return err
		}
		return repos.NoteRepo().Save(ctx, note)
	})
	if err != nil {
		return nil, err
	}
	return ToNoteResponse(note), nil
}

// Complete transitions a draft note to COMPLETED. All lines are validated
// against the purchase order's pending quantities while the order lines are
// row-locked; a single failing line aborts the whole completion. On success
// the stock ledger, the received aggregates, the order's received status and
// the note transition all commit together.
func (s *NoteService) Complete(ctx context.Context, organizationID, noteID uuid.UUID) (*NoteResponse, error) {
	var note *receiving.ReceivingNote
	var completedAt time.Time

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		note, err = repos.NoteRepo().FindByIDForOrganization(ctx, organizationID, noteID)
		if err != nil {
			return err
		}

		// Several note lines may reference the same order line; validation
		// runs against the summed quantity per order line, not line by line.
		requested := make(map[uuid.UUID]decimal.Decimal, len(note.Lines))
		orderLineIDs := make([]uuid.UUID, 0, len(note.Lines))
		for _, line := range note.Lines {
			if _, seen := requested[line.OrderLineID]; !seen {
				orderLineIDs = append(orderLineIDs, line.OrderLineID)
			}
			requested[line.OrderLineID] = requested[line.OrderLineID].Add(line.Quantity)
		}
		orderLines, err := repos.OrderLineRepo().FindByIDsForUpdate(ctx, orderLineIDs)
		if err != nil {
			return err
		}
		byID := make(map[uuid.UUID]int, len(orderLines))
		for i, line := range orderLines {
			byID[line.ID] = i
		}

		for _, id := range orderLineIDs {
			idx, ok := byID[id]
			if !ok {
				return shared.ErrNotFound
			}
			if err := receiving.ValidateAgainstPending(requested[id], orderLines[idx].PendingQuantity()); err != nil {
				return err
			}
		}

		completedAt = s.now()
		if err := note.Complete(completedAt); err != nil {
			return err
		}

		effectiveAt := note.MovementTimestamp(completedAt)
		movements := make([]receiving.StockMovement, 0, len(note.Lines))
		for _, line := range note.Lines {
			idx := byID[line.OrderLineID]
			orderLines[idx].AddReceivedQuantity(line.Quantity)
			movements = append(movements, *receiving.NewStockMovement(note, &line, effectiveAt))
		}
		if err := repos.MovementRepo().Append(ctx, movements); err != nil {
			return err
		}
		for i := range orderLines {
			if err := repos.OrderLineRepo().Save(ctx, &orderLines[i]); err != nil {
				return err
			}
		}

		order, err := repos.OrderRepo().FindByID(ctx, note.PurchaseOrderID)
		if err != nil {
			return err
		}
		allLines, err := repos.OrderLineRepo().FindByOrder(ctx, order.ID)
		if err != nil {
			return err
		}
		order.RefreshReceivedStatus(allLines)
		if err := repos.OrderRepo().Save(ctx, order); err != nil {
			return err
		}

		return repos.NoteRepo().Save(ctx, note)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("receiving note completed",
		zap.String("note_id", note.ID.String()),
		zap.String("document_number", note.DocumentNumber()),
		zap.Time("completed_at", completedAt))

	if s.eventPublisher != nil {
		_ = s.eventPublisher.Publish(ctx, receiving.NewReceivingNoteCompletedEvent(note, completedAt))
	}

	return ToNoteResponse(note), nil
}

// attachLine validates a line request against the note's purchase order and
// appends it to the draft. Quantity-vs-pending validation is deferred to
// completion; at draft time only structural integrity is enforced.
func (s *NoteService) attachLine(ctx context.Context, repos TransactionalRepositories, note *receiving.ReceivingNote, orderID uuid.UUID, req CreateNoteLineRequest) error {
	orderLine, err := repos.OrderLineRepo().FindByID(ctx, req.OrderLineID)
	if err != nil {
		return err
	}
	if orderLine.OrderID != orderID {
		return shared.NewDomainError("LINE_ORDER_MISMATCH", "Order line does not belong to the note's purchase order")
	}
	if orderLine.ProductID != req.ProductID {
		return shared.NewDomainError("LINE_PRODUCT_MISMATCH", "Product does not match the order line")
	}
	_, err = note.AddLine(req.OrderLineID, req.ProductID, req.Quantity)
	return err
}
