package commands_test

import (
	"testing"
	"time"

	"wastetrack/internal/core/application/usecases/commands"
	"wastetrack/internal/core/domain/model/kernel"
	"wastetrack/internal/core/domain/model/lifecycle"
	"wastetrack/internal/core/domain/model/wasteitem"
	"wastetrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func storedItem(t *testing.T, state lifecycle.State, quantity int64) *wasteitem.WasteItem {
	t.Helper()
	item, err := wasteitem.RestoreWasteItem(
		kernel.NewUUID(), nil, "15 01 02", quantity, "kg", state, "plant-3", nil,
		fixedNow.Add(-24*time.Hour), fixedNow.Add(-time.Hour), 3,
	)
	require.NoError(t, err)
	return item
}

func TestRegisterWasteItemCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, err := commands.NewRegisterWasteItemCommand(id, "20 01 01", 250, "kg", "generator-1")
	require.NoError(t, err)

	repo := new(MockWasteItemRepository)
	uow := new(MockWasteItemUoW)
	factory := new(MockWasteItemUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("WasteItemRepository").Return(repo).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*wasteitem.WasteItem")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewRegisterWasteItemCommandHandler(factory, fixedClock)
	res, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.True(t, res.IsSuccess())
	assert.Equal(t, id, res.Value().ID)
	assert.Equal(t, lifecycle.Generated.String(), res.Value().State)
	assert.Equal(t, int64(250), res.Value().Quantity)
	assert.Equal(t, "generator-1", res.Value().HolderID)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestRegisterWasteItemCommandHandler_Handle_InvalidQuantity(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewRegisterWasteItemCommand(kernel.NewUUID(), "20 01 01", 0, "kg", "generator-1")
	require.NoError(t, err)

	factory := new(MockWasteItemUoWFactory)
	h := commands.NewRegisterWasteItemCommandHandler(factory, fixedClock)
	res, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, res.IsSuccess())
	assert.NotEmpty(t, res.Message())
	factory.AssertNotCalled(t, "Create")
}

func TestTransitionWasteItemCommandHandler_Handle_PartialSplit(t *testing.T) {
	ctx := t.Context()
	item := storedItem(t, lifecycle.InTreatment, 100)
	cert := "CERT-001"
	cmd, err := commands.NewTransitionWasteItemCommand(
		item.ID(), lifecycle.Treated, 40, true, []string{lifecycle.GuardTreatmentRecorded}, &cert,
	)
	require.NoError(t, err)

	repo := new(MockWasteItemRepository)
	uow := new(MockWasteItemUoW)
	factory := new(MockWasteItemUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("WasteItemRepository").Return(repo).Once(),
		repo.On("Get", ctx, item.ID()).Return(item, nil).Once(),
		repo.On("Update", ctx, item).Return(nil).Once(),
		repo.On("Add", ctx, mock.MatchedBy(func(split *wasteitem.WasteItem) bool {
			return split.ParentID() != nil && *split.ParentID() == item.ID() && split.Quantity() == 40
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewTransitionWasteItemCommandHandler(factory, fixedClock)
	res, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.True(t, res.IsSuccess())
	view := res.Value()
	assert.Equal(t, int64(60), view.Quantity)
	assert.Equal(t, lifecycle.InTreatment.String(), view.State)
	require.NotNil(t, view.Split)
	assert.Equal(t, int64(40), view.Split.Quantity)
	assert.Equal(t, lifecycle.Treated.String(), view.Split.State)
	require.NotNil(t, view.Split.CertificateRef)
	assert.Equal(t, "CERT-001", *view.Split.CertificateRef)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestTransitionWasteItemCommandHandler_Handle_MissingEvidence(t *testing.T) {
	ctx := t.Context()
	item := storedItem(t, lifecycle.InTreatment, 100)
	cmd, err := commands.NewTransitionWasteItemCommand(item.ID(), lifecycle.Treated, 100, false, nil, nil)
	require.NoError(t, err)

	repo := new(MockWasteItemRepository)
	uow := new(MockWasteItemUoW)
	factory := new(MockWasteItemUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("WasteItemRepository").Return(repo).Once(),
		repo.On("Get", ctx, item.ID()).Return(item, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewTransitionWasteItemCommandHandler(factory, fixedClock)
	res, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, res.IsSuccess())
	require.ErrorIs(t, res.Err(), errs.ErrDomainRuleViolation)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestNewTransitionWasteItemCommand_UnknownTarget(t *testing.T) {
	_, err := commands.NewTransitionWasteItemCommand(kernel.NewUUID(), lifecycle.Unknown, 1, false, nil, nil)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestTransferWasteItemCustodyCommandHandler_Handle(t *testing.T) {
	t.Run("hands the item over", func(t *testing.T) {
		ctx := t.Context()
		item := storedItem(t, lifecycle.Received, 10)
		cmd, err := commands.NewTransferWasteItemCustodyCommand(item.ID(), "recycler-9")
		require.NoError(t, err)

		repo := new(MockWasteItemRepository)
		uow := new(MockWasteItemUoW)
		factory := new(MockWasteItemUoWFactory)
		mock.InOrder(
			factory.On("Create").Return(uow).Once(),
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("WasteItemRepository").Return(repo).Once(),
			repo.On("Get", ctx, item.ID()).Return(item, nil).Once(),
			repo.On("Update", ctx, item).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		h := commands.NewTransferWasteItemCustodyCommandHandler(factory, fixedClock)
		res, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		require.True(t, res.IsSuccess())
		assert.Equal(t, "recycler-9", res.Value().HolderID)
		assert.Equal(t, fixedNow, res.Value().UpdatedAt)
		assert.Nil(t, res.Value().Split)
		repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
		uow.AssertExpectations(t)
	})

	t.Run("lost update is returned as error", func(t *testing.T) {
		ctx := t.Context()
		item := storedItem(t, lifecycle.Received, 10)
		cmd, err := commands.NewTransferWasteItemCustodyCommand(item.ID(), "recycler-9")
		require.NoError(t, err)

		repo := new(MockWasteItemRepository)
		uow := new(MockWasteItemUoW)
		factory := new(MockWasteItemUoWFactory)
		mock.InOrder(
			factory.On("Create").Return(uow).Once(),
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("WasteItemRepository").Return(repo).Once(),
			repo.On("Get", ctx, item.ID()).Return(item, nil).Once(),
			repo.On("Update", ctx, item).
				Return(errs.NewConcurrencyConflictError("wasteItemId", item.ID().String(), 3)).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		h := commands.NewTransferWasteItemCustodyCommandHandler(factory, fixedClock)
		_, err = h.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrConcurrencyConflict)
		uow.AssertExpectations(t)
	})

	t.Run("generated items cannot change holder", func(t *testing.T) {
		ctx := t.Context()
		item := storedItem(t, lifecycle.Generated, 10)
		cmd, err := commands.NewTransferWasteItemCustodyCommand(item.ID(), "recycler-9")
		require.NoError(t, err)

		repo := new(MockWasteItemRepository)
		uow := new(MockWasteItemUoW)
		factory := new(MockWasteItemUoWFactory)
		factory.On("Create").Return(uow).Once()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("WasteItemRepository").Return(repo).Once()
		repo.On("Get", ctx, item.ID()).Return(item, nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		h := commands.NewTransferWasteItemCustodyCommandHandler(factory, fixedClock)
		res, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		require.ErrorIs(t, res.Err(), errs.ErrDomainRuleViolation)
		assert.Equal(t, "custody cannot be transferred while the item is Generated", res.Message())
	})
}
