package registration

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/trd-registration/internal/guard"
	"github.com/magabrotheeeer/trd-registration/internal/models"
	"github.com/magabrotheeeer/trd-registration/internal/services/uploader"
	"github.com/magabrotheeeer/trd-registration/internal/validation"
)

type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Upload(ctx context.Context, files []models.PhotoFile, progress uploader.ProgressFunc) ([]string, error) {
	args := m.Called(ctx, files, progress)
	if res := args.Get(0); res != nil {
		return res.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockUsers struct {
	mock.Mock
}

func (m *MockUsers) Create(ctx context.Context, user models.UserRecord) (*models.UserRecord, error) {
	args := m.Called(ctx, user)
	if res := args.Get(0); res != nil {
		return res.(*models.UserRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishRegistered(ctx context.Context, event models.RegistrationEvent) error {
	return m.Called(ctx, event).Error(0)
}

func validDraft() models.Draft {
	return models.Draft{
		Name:         "María",
		LastName:     "Pérez",
		DocumentType: "DNI",
		DocNumber:    "12345678",
		Email:        "maria@example.com",
		PhoneNumber:  "+593991234567",
		Photos: []models.PhotoFile{
			{Name: "a.jpg", ContentType: "image/jpeg", Size: 10, Content: strings.NewReader("a")},
			{Name: "b.png", ContentType: "image/png", Size: 10, Content: strings.NewReader("b")},
		},
	}
}

type fixture struct {
	service   *Service
	uploader  *MockUploader
	users     *MockUsers
	publisher *MockPublisher
	guard     *guard.Memory
}

func newFixture() *fixture {
	f := &fixture{
		uploader:  new(MockUploader),
		users:     new(MockUsers),
		publisher: new(MockPublisher),
		guard:     guard.NewMemory(time.Minute),
	}
	f.service = NewService(
		validation.New(),
		f.uploader,
		f.users,
		f.guard,
		f.publisher,
		3*time.Second,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	return f
}

func TestSubmit_Success(t *testing.T) {
	f := newFixture()
	draft := validDraft()
	urls := []string{"https://cdn/trd_images/public/1-a.jpg", "https://cdn/trd_images/public/2-b.png"}

	f.uploader.On("Upload", mock.Anything, draft.Photos, mock.Anything).Return(urls, nil)
	f.users.On("Create", mock.Anything, mock.MatchedBy(func(u models.UserRecord) bool {
		return u.Name == "María" && u.DocNumber == "12345678" && assert.ObjectsAreEqual(urls, u.Photos)
	})).Return(&models.UserRecord{ID: "uuid-1", Name: "María", Email: "maria@example.com", Photos: urls}, nil)
	f.publisher.On("PublishRegistered", mock.Anything, mock.MatchedBy(func(e models.RegistrationEvent) bool {
		return e.UserID == "uuid-1" && e.Email == "maria@example.com"
	})).Return(nil)

	res, err := f.service.Submit(context.Background(), draft, nil)
	require.NoError(t, err)

	assert.Equal(t, "uuid-1", res.User.ID)
	assert.Equal(t, "/profile/uuid-1", res.ProfilePath)
	assert.Equal(t, 3*time.Second, res.RedirectAfter)

	state, err := f.service.State(context.Background(), "DNI", "12345678")
	require.NoError(t, err)
	assert.Equal(t, guard.Navigating, state)

	f.uploader.AssertExpectations(t)
	f.users.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestSubmit_ValidationGatesSubmission(t *testing.T) {
	f := newFixture()
	draft := validDraft()
	draft.PhoneNumber = "0991234567"

	_, err := f.service.Submit(context.Background(), draft, nil)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "El número de teléfono debe comenzar con + y tener al menos 8 dígitos", verr.Fields["phone_number"])

	state, err := f.service.State(context.Background(), "DNI", "12345678")
	require.NoError(t, err)
	assert.Equal(t, guard.Idle, state, "invalid draft must not enter Submitting")
	f.uploader.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmit_UploadFailureRevertsToIdle(t *testing.T) {
	f := newFixture()
	draft := validDraft()
	f.uploader.On("Upload", mock.Anything, draft.Photos, mock.Anything).Return(nil, errors.New("bucket unavailable"))

	_, err := f.service.Submit(context.Background(), draft, nil)

	require.ErrorIs(t, err, ErrUpload)
	f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.publisher.AssertNotCalled(t, "PublishRegistered", mock.Anything, mock.Anything)

	state, err := f.service.State(context.Background(), "DNI", "12345678")
	require.NoError(t, err)
	assert.Equal(t, guard.Idle, state)
}

func TestSubmit_StoreFailureKeepsStoreError(t *testing.T) {
	f := newFixture()
	draft := validDraft()
	f.uploader.On("Upload", mock.Anything, draft.Photos, mock.Anything).Return([]string{"u1", "u2"}, nil)
	f.users.On("Create", mock.Anything, mock.Anything).Return(nil, &models.StoreError{
		Code:    "23505",
		Message: "duplicate key value violates unique constraint \"users_email_unique\"",
	})

	_, err := f.service.Submit(context.Background(), draft, nil)

	var storeErr *models.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "23505", storeErr.Code)

	state, err := f.service.State(context.Background(), "DNI", "12345678")
	require.NoError(t, err)
	assert.Equal(t, guard.Idle, state)
}

func TestSubmit_SecondSubmitInProgress(t *testing.T) {
	f := newFixture()
	draft := validDraft()

	ok, err := f.guard.Acquire(context.Background(), guard.Key("DNI", "12345678"))
	require.NoError(t, err)
	require.True(t, ok)

	_, err = f.service.Submit(context.Background(), draft, nil)

	require.ErrorIs(t, err, ErrInProgress)
	f.uploader.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmit_DuplicateWhileNavigating(t *testing.T) {
	f := newFixture()
	draft := validDraft()
	f.uploader.On("Upload", mock.Anything, mock.Anything, mock.Anything).Return([]string{}, nil).Once()
	f.users.On("Create", mock.Anything, mock.Anything).Return(&models.UserRecord{ID: "uuid-1"}, nil).Once()
	f.publisher.On("PublishRegistered", mock.Anything, mock.Anything).Return(nil).Once()

	_, err := f.service.Submit(context.Background(), draft, nil)
	require.NoError(t, err)

	_, err = f.service.Submit(context.Background(), validDraft(), nil)
	require.ErrorIs(t, err, ErrInProgress)
	f.users.AssertNumberOfCalls(t, "Create", 1)
}

func TestSubmit_PublishFailureDoesNotFail(t *testing.T) {
	f := newFixture()
	draft := validDraft()
	draft.Photos = nil
	f.uploader.On("Upload", mock.Anything, mock.Anything, mock.Anything).Return([]string{}, nil)
	f.users.On("Create", mock.Anything, mock.Anything).Return(&models.UserRecord{ID: "uuid-2"}, nil)
	f.publisher.On("PublishRegistered", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	res, err := f.service.Submit(context.Background(), draft, nil)

	require.NoError(t, err)
	assert.Equal(t, "uuid-2", res.User.ID)
}

func TestNewService_NilPublisher(t *testing.T) {
	u := new(MockUploader)
	users := new(MockUsers)
	s := NewService(validation.New(), u, users, guard.NewMemory(time.Minute), nil, time.Second,
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	u.On("Upload", mock.Anything, mock.Anything, mock.Anything).Return([]string{}, nil)
	users.On("Create", mock.Anything, mock.Anything).Return(&models.UserRecord{ID: "x"}, nil)

	draft := validDraft()
	draft.Photos = nil
	res, err := s.Submit(context.Background(), draft, nil)

	require.NoError(t, err)
	assert.Equal(t, "/profile/x", res.ProfilePath)
}

func TestValidate(t *testing.T) {
	f := newFixture()
	draft := validDraft()
	assert.Nil(t, f.service.Validate(draft))

	draft.Email = "not-an-email"
	draft.Name = "M"
	fields := f.service.Validate(draft)
	assert.Equal(t, "Correo electrónico inválido", fields["email"])
	assert.Equal(t, "El nombre debe tener al menos 2 caracteres", fields["name"])
}
