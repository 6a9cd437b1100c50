package business_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/flowquote/flowquote/internal/apperr"
	"github.com/flowquote/flowquote/internal/auth"
	"github.com/flowquote/flowquote/internal/business"
	"github.com/flowquote/flowquote/internal/media"
	"github.com/flowquote/flowquote/internal/notify"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []notify.Event
}

func (r *recordingNotifier) Notify(e notify.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, e)
}

func setup(t *testing.T) (*business.Service, *business.MockRepository, *business.MockBlobs, *recordingNotifier) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := business.NewMockRepository(ctrl)
	blobs := business.NewMockBlobs(ctrl)
	n := &recordingNotifier{}

	return business.NewService(repo, blobs, n), repo, blobs, n
}

func TestSignup(t *testing.T) {
	type args struct {
		params business.SignupParams
	}

	type testCase struct {
		name       string
		args       args
		setupMocks func(repo *business.MockRepository)
		wantErr    error
		wantMsg    string
	}

	valid := business.SignupParams{Email: " Owner@Acme.TEST ", Password: "secret1", Name: "Acme", Phone: "555"}

	tests := []testCase{
		{
			name: "Success",
			args: args{params: valid},
			setupMocks: func(repo *business.MockRepository) {
				repo.EXPECT().CreateBusiness(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, b *business.Business) error {
						assert.Equal(t, "owner@acme.test", b.Email)
						assert.Equal(t, business.PaymentUnpaid, b.PaymentStatus)
						assert.False(t, b.EmailVerified)
						assert.Len(t, b.VerificationToken, 64)
						require.NotNil(t, b.VerificationTokenExpiry)
						assert.WithinDuration(t, time.Now().Add(24*time.Hour), *b.VerificationTokenExpiry, time.Minute)
						assert.NoError(t, auth.VerifyPassword(b.PasswordHash, "secret1"))

						b.ID = uuid.New()

						return nil
					})
			},
		},
		{
			name: "ShortPassword",
			args: args{params: business.SignupParams{Email: "a@b.co", Password: "12345", Name: "Acme", Phone: "555"}},
			setupMocks: func(*business.MockRepository) {},
			wantErr:    apperr.ErrValidation,
			wantMsg:    "Password must be at least 6 characters",
		},
		{
			name: "InvalidEmail",
			args: args{params: business.SignupParams{Email: "nope", Password: "123456", Name: "Acme", Phone: "555"}},
			setupMocks: func(*business.MockRepository) {},
			wantErr:    apperr.ErrValidation,
		},
		{
			name: "DuplicateEmail",
			args: args{params: valid},
			setupMocks: func(repo *business.MockRepository) {
				repo.EXPECT().CreateBusiness(gomock.Any(), gomock.Any()).Return(business.ErrEmailTaken)
			},
			wantErr: apperr.ErrValidation,
			wantMsg: "An account with this email already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _, n := setup(t)
			tt.setupMocks(repo)

			b, err := svc.Signup(context.Background(), tt.args.params)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)

				if tt.wantMsg != "" {
					assert.Equal(t, tt.wantMsg, apperr.Message(err, ""))
				}

				assert.Empty(t, n.events)

				return
			}

			require.NoError(t, err)
			require.Len(t, n.events, 1)
			assert.Equal(t, notify.KindVerificationRequested, n.events[0].Kind)
			assert.Equal(t, b.VerificationToken, n.events[0].VerificationToken)
		})
	}
}

func TestVerifyEmail(t *testing.T) {
	id := uuid.New()
	future := time.Now().Add(time.Hour)
	past := time.Now().Add(-time.Hour)

	type testCase struct {
		name        string
		token       string
		setupMocks  func(repo *business.MockRepository)
		wantAlready bool
		wantErr     error
	}

	tests := []testCase{
		{
			name:       "MissingToken",
			token:      " ",
			setupMocks: func(*business.MockRepository) {},
			wantErr:    apperr.ErrValidation,
		},
		{
			name:  "UnknownToken",
			token: "abc",
			setupMocks: func(repo *business.MockRepository) {
				repo.EXPECT().GetBusinessByVerificationToken(gomock.Any(), "abc").Return(nil, business.ErrNotFound)
			},
			wantErr: apperr.ErrValidation,
		},
		{
			name:  "Expired",
			token: "abc",
			setupMocks: func(repo *business.MockRepository) {
				repo.EXPECT().GetBusinessByVerificationToken(gomock.Any(), "abc").
					Return(&business.Business{ID: id, VerificationTokenExpiry: &past}, nil)
			},
			wantErr: apperr.ErrValidation,
		},
		{
			name:  "AlreadyVerified",
			token: "abc",
			setupMocks: func(repo *business.MockRepository) {
				repo.EXPECT().GetBusinessByVerificationToken(gomock.Any(), "abc").
					Return(&business.Business{ID: id, EmailVerified: true}, nil)
			},
			wantAlready: true,
		},
		{
			name:  "Success",
			token: "abc",
			setupMocks: func(repo *business.MockRepository) {
				repo.EXPECT().GetBusinessByVerificationToken(gomock.Any(), "abc").
					Return(&business.Business{ID: id, VerificationTokenExpiry: &future}, nil)
				repo.EXPECT().MarkEmailVerified(gomock.Any(), id).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _, _ := setup(t)
			tt.setupMocks(repo)

			already, err := svc.VerifyEmail(context.Background(), tt.token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantAlready, already)
		})
	}
}

func TestLogin(t *testing.T) {
	hash, err := auth.HashPassword("secret1")
	require.NoError(t, err)

	verified := &business.Business{ID: uuid.New(), Email: "owner@acme.test", PasswordHash: hash, EmailVerified: true}
	unverified := &business.Business{ID: uuid.New(), Email: "new@acme.test", PasswordHash: hash}

	type testCase struct {
		name       string
		email      string
		password   string
		setupMocks func(repo *business.MockRepository)
		wantErr    error
	}

	tests := []testCase{
		{
			name:     "Success",
			email:    "OWNER@acme.test",
			password: "secret1",
			setupMocks: func(repo *business.MockRepository) {
				repo.EXPECT().GetBusinessByEmail(gomock.Any(), "owner@acme.test").Return(verified, nil)
			},
		},
		{
			name:     "UnknownEmail",
			email:    "ghost@acme.test",
			password: "secret1",
			setupMocks: func(repo *business.MockRepository) {
				repo.EXPECT().GetBusinessByEmail(gomock.Any(), "ghost@acme.test").Return(nil, business.ErrNotFound)
			},
			wantErr: apperr.ErrUnauthorized,
		},
		{
			name:     "WrongPassword",
			email:    "owner@acme.test",
			password: "nope",
			setupMocks: func(repo *business.MockRepository) {
				repo.EXPECT().GetBusinessByEmail(gomock.Any(), "owner@acme.test").Return(verified, nil)
			},
			wantErr: apperr.ErrUnauthorized,
		},
		{
			name:     "Unverified",
			email:    "new@acme.test",
			password: "secret1",
			setupMocks: func(repo *business.MockRepository) {
				repo.EXPECT().GetBusinessByEmail(gomock.Any(), "new@acme.test").Return(unverified, nil)
			},
			wantErr: apperr.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _, _ := setup(t)
			tt.setupMocks(repo)

			b, err := svc.Login(context.Background(), tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, verified.ID, b.ID)
		})
	}
}

func TestUploadLogo(t *testing.T) {
	id := uuid.New()
	png := media.File{Name: "logo.png", ContentType: "image/png", Size: 1024, Body: strings.NewReader("x")}

	t.Run("ReplacesOldLogo", func(t *testing.T) {
		svc, repo, blobs, _ := setup(t)

		repo.EXPECT().GetBusiness(gomock.Any(), id).Return(&business.Business{ID: id, LogoRef: "r2:logos/old.png"}, nil)
		blobs.EXPECT().Upload(gomock.Any(), media.PurposeLogos, png).Return("r2:logos/new.png", nil)
		repo.EXPECT().UpdateLogo(gomock.Any(), id, "r2:logos/new.png").Return(nil)
		blobs.EXPECT().RemoveQuietly(gomock.Any(), "r2:logos/old.png")

		ref, err := svc.UploadLogo(context.Background(), id, png)
		require.NoError(t, err)
		assert.Equal(t, "r2:logos/new.png", ref)
	})

	t.Run("RejectsType", func(t *testing.T) {
		svc, _, _, _ := setup(t)

		_, err := svc.UploadLogo(context.Background(), id, media.File{Name: "a.gif", ContentType: "image/gif", Size: 1})
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("RejectsSize", func(t *testing.T) {
		svc, _, _, _ := setup(t)

		_, err := svc.UploadLogo(context.Background(), id, media.File{Name: "a.png", ContentType: "image/png", Size: 6 << 20})
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("UploadFailure", func(t *testing.T) {
		svc, repo, blobs, _ := setup(t)

		repo.EXPECT().GetBusiness(gomock.Any(), id).Return(&business.Business{ID: id}, nil)
		blobs.EXPECT().Upload(gomock.Any(), media.PurposeLogos, png).
			Return("", apperr.Storage("Failed to upload file", errors.New("down")))

		_, err := svc.UploadLogo(context.Background(), id, png)
		assert.ErrorIs(t, err, apperr.ErrStorage)
	})
}

func TestDeleteLogo(t *testing.T) {
	id := uuid.New()

	t.Run("NoLogo", func(t *testing.T) {
		svc, repo, _, _ := setup(t)
		repo.EXPECT().GetBusiness(gomock.Any(), id).Return(&business.Business{ID: id}, nil)

		assert.ErrorIs(t, svc.DeleteLogo(context.Background(), id), apperr.ErrNotFound)
	})

	t.Run("Success", func(t *testing.T) {
		svc, repo, blobs, _ := setup(t)
		repo.EXPECT().GetBusiness(gomock.Any(), id).Return(&business.Business{ID: id, LogoRef: "/uploads/logos/a.png"}, nil)
		repo.EXPECT().UpdateLogo(gomock.Any(), id, "").Return(nil)
		blobs.EXPECT().RemoveQuietly(gomock.Any(), "/uploads/logos/a.png")

		assert.NoError(t, svc.DeleteLogo(context.Background(), id))
	})
}

func TestSubmitPayment(t *testing.T) {
	svc, repo, _, n := setup(t)
	id := uuid.New()

	repo.EXPECT().GetBusiness(gomock.Any(), id).Return(&business.Business{ID: id, Name: "Acme", Email: "o@acme.test"}, nil)
	repo.EXPECT().UpdatePaymentSubmitted(gomock.Any(), id, gomock.Any()).Return(nil)

	at, err := svc.SubmitPayment(context.Background(), id)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), at, time.Minute)

	require.Len(t, n.events, 1)
	assert.Equal(t, notify.KindPaymentSubmitted, n.events[0].Kind)
	assert.Equal(t, at, n.events[0].SubmittedAt)
}

func TestSetPaymentStatus(t *testing.T) {
	id := uuid.New()

	t.Run("Invalid", func(t *testing.T) {
		svc, _, _, _ := setup(t)
		assert.ErrorIs(t, svc.SetPaymentStatus(context.Background(), id, "FREE"), apperr.ErrValidation)
	})

	t.Run("UnknownBusiness", func(t *testing.T) {
		svc, repo, _, _ := setup(t)
		repo.EXPECT().UpdatePaymentStatus(gomock.Any(), id, business.PaymentPaid).Return(business.ErrNotFound)

		assert.ErrorIs(t, svc.SetPaymentStatus(context.Background(), id, business.PaymentPaid), apperr.ErrNotFound)
	})
}

func TestUpdateSettings(t *testing.T) {
	svc, repo, _, _ := setup(t)
	id := uuid.New()

	_, err := svc.UpdateSettings(context.Background(), id, business.SettingsParams{Name: " ", Phone: "555"})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	repo.EXPECT().UpdateSettings(gomock.Any(), id, business.SettingsParams{Name: "Acme", Phone: "555", Address: "1 Main"}).Return(nil)
	repo.EXPECT().GetBusiness(gomock.Any(), id).Return(&business.Business{ID: id, Name: "Acme"}, nil)

	b, err := svc.UpdateSettings(context.Background(), id, business.SettingsParams{Name: " Acme ", Phone: "555", Address: " 1 Main "})
	require.NoError(t, err)
	assert.Equal(t, "Acme", b.Name)
}
