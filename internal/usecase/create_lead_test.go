package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/pzk-backend/internal/entity"
	"github.com/xavierca1/pzk-backend/internal/infra/integration/bitrix"
)

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) UpdateCRMOutcome(ctx context.Context, id int64, sent bool, response string) error {
	args := m.Called(ctx, id, sent, response)
	return args.Error(0)
}

// MockCRMNotifier
type MockCRMNotifier struct {
	mock.Mock
}

func (m *MockCRMNotifier) CreateLead(ctx context.Context, input bitrix.CreateLeadInput) (*bitrix.CreateLeadResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bitrix.CreateLeadResult), args.Error(1)
}

func TestCreateLeadSuccess(t *testing.T) {
	repo := new(MockLeadRepository)
	crm := new(MockCRMNotifier)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Lead).ID = 42
	})
	crm.On("CreateLead", mock.Anything, bitrix.CreateLeadInput{
		Name:     "Ivan",
		Phone:    "+7 999 123-45-67",
		Comments: "/landing",
	}).Return(&bitrix.CreateLeadResult{LeadID: 777, Raw: []byte(`{"result":777}`)}, nil)
	repo.On("UpdateCRMOutcome", mock.Anything, int64(42), true, `{"result":777}`).Return(nil)

	uc := NewCreateLeadUseCase(repo, crm)
	output, err := uc.Execute(context.Background(), CreateLeadInput{
		Name:   "Ivan",
		Phone:  "+7 999 123-45-67",
		Source: "/landing",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(42), output.ID)
	assert.Equal(t, "Ivan", output.Name)
	assert.Equal(t, "+7 999 123-45-67", output.Phone)
	if assert.NotNil(t, output.BitrixLeadID) {
		assert.Equal(t, 777, *output.BitrixLeadID)
	}
	repo.AssertExpectations(t)
	crm.AssertExpectations(t)
}

func TestCreateLeadCRMFailureStillSucceeds(t *testing.T) {
	repo := new(MockLeadRepository)
	crm := new(MockCRMNotifier)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Lead).ID = 42
	})
	crm.On("CreateLead", mock.Anything, mock.Anything).Return(nil, errors.New("bitrix down"))
	repo.On("UpdateCRMOutcome", mock.Anything, int64(42), false, `{"error":"bitrix down"}`).Return(nil)

	uc := NewCreateLeadUseCase(repo, crm)
	output, err := uc.Execute(context.Background(), CreateLeadInput{Name: "Ivan", Phone: "89991234567"})

	assert.NoError(t, err)
	assert.Nil(t, output.BitrixLeadID)
	repo.AssertExpectations(t)
}

func TestCreateLeadValidationFailure(t *testing.T) {
	repo := new(MockLeadRepository)
	crm := new(MockCRMNotifier)

	uc := NewCreateLeadUseCase(repo, crm)
	output, err := uc.Execute(context.Background(), CreateLeadInput{Name: "Ivan", Phone: "not-a-phone!"})

	assert.Nil(t, output)
	var verrs ValidationErrors
	assert.ErrorAs(t, err, &verrs)
	repo.AssertNotCalled(t, "Create")
	crm.AssertNotCalled(t, "CreateLead")
}

func TestCreateLeadInsertFailureAborts(t *testing.T) {
	repo := new(MockLeadRepository)
	crm := new(MockCRMNotifier)

	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	uc := NewCreateLeadUseCase(repo, crm)
	output, err := uc.Execute(context.Background(), CreateLeadInput{Name: "Ivan", Phone: "89991234567"})

	assert.Nil(t, output)
	var techErr *TechnicalError
	assert.ErrorAs(t, err, &techErr)
	assert.Equal(t, CodeDatabaseError, techErr.Code)

	// Persistence failure means no CRM attempt at all.
	crm.AssertNotCalled(t, "CreateLead")
}

func TestCreateLeadOutcomeUpdateFailureSwallowed(t *testing.T) {
	repo := new(MockLeadRepository)
	crm := new(MockCRMNotifier)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Lead).ID = 42
	})
	crm.On("CreateLead", mock.Anything, mock.Anything).
		Return(&bitrix.CreateLeadResult{LeadID: 9, Raw: []byte(`{"result":9}`)}, nil)
	repo.On("UpdateCRMOutcome", mock.Anything, int64(42), true, `{"result":9}`).
		Return(errors.New("connection reset"))

	uc := NewCreateLeadUseCase(repo, crm)
	output, err := uc.Execute(context.Background(), CreateLeadInput{Name: "Ivan", Phone: "89991234567"})

	assert.NoError(t, err)
	if assert.NotNil(t, output.BitrixLeadID) {
		assert.Equal(t, 9, *output.BitrixLeadID)
	}
}
