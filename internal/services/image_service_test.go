package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ahmetcoskunkizilkaya/rishta-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateImage(t *testing.T) {
	ext, err := ValidateImage("image/jpeg", 1024, 5<<20)
	require.NoError(t, err)
	assert.Equal(t, ".jpg", ext)

	ext, err = ValidateImage("Image/PNG; charset=binary", 1024, 5<<20)
	require.NoError(t, err)
	assert.Equal(t, ".png", ext)

	_, err = ValidateImage("image/gif", 1024, 5<<20)
	assert.ErrorIs(t, err, ErrUnsupportedImage)

	_, err = ValidateImage("image/webp", 0, 5<<20)
	assert.ErrorIs(t, err, ErrEmptyImage)

	_, err = ValidateImage("image/webp", 6<<20, 5<<20)
	assert.ErrorIs(t, err, ErrImageTooLarge)
	assert.EqualError(t, err, ErrImageTooLarge.Error()+": maximum is 5 MB")
}

func TestValidateImage_SmallLimitMessage(t *testing.T) {
	_, err := ValidateImage("image/jpeg", 600<<10, 512<<10)
	require.ErrorIs(t, err, ErrImageTooLarge)
	assert.Contains(t, err.Error(), "maximum is 512 KB")
	assert.NotContains(t, err.Error(), "0 MB")

	_, err = ValidateImage("image/jpeg", 2000, 1500)
	assert.Contains(t, err.Error(), "maximum is 1500 bytes")
}

func TestImageObjectKey(t *testing.T) {
	userID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	now := time.Unix(1792141800, 0)

	key := ImageObjectKey(userID, "My Wedding Photo!.JPG", ".jpg", now)
	assert.Equal(t, "profiles/11111111-1111-1111-1111-111111111111/1792141800-my-wedding-photo.jpg", key)

	key = ImageObjectKey(userID, "../../???.png", ".png", now)
	assert.Equal(t, "profiles/11111111-1111-1111-1111-111111111111/1792141800-photo.png", key)
}

func TestImageUpload_FirstIsPrimary(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	store := &fakeStore{}
	svc := NewImageService(db, store, 5<<20)
	userID := uuid.New()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "profile_images"`).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO "profile_images"`).WillReturnRows(testutil.IDRows(uuid.NewString()))

	img, err := svc.Upload(context.Background(), userID, "me.jpg", "image/jpeg", 3, strings.NewReader("abc"))
	require.NoError(t, err)
	assert.True(t, img.IsPrimary)
	assert.Len(t, store.puts, 1)
	assert.True(t, strings.HasPrefix(img.URL, "https://cdn.example.pk/profiles/"+userID.String()+"/"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImageUpload_RemovesObjectWhenRowFails(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	store := &fakeStore{}
	svc := NewImageService(db, store, 5<<20)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "profile_images"`).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`INSERT INTO "profile_images"`).WillReturnError(errors.New("insert failed"))

	_, err := svc.Upload(context.Background(), uuid.New(), "me.png", "image/png", 3, strings.NewReader("abc"))
	require.Error(t, err)
	assert.Equal(t, store.puts, store.deletes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImageUpload_NoStorage(t *testing.T) {
	db, _ := testutil.NewMockDB(t)
	svc := NewImageService(db, nil, 5<<20)

	_, err := svc.Upload(context.Background(), uuid.New(), "me.png", "image/png", 3, strings.NewReader("abc"))
	assert.ErrorIs(t, err, ErrStorageDisabled)
}

func TestImageDelete(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	store := &fakeStore{}
	svc := NewImageService(db, store, 5<<20)
	imageID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "profile_images"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "object_key"}).AddRow(imageID.String(), "profiles/u/1-a.jpg"))
	mock.ExpectExec(`DELETE FROM "profile_images"`).WillReturnResult(testutil.Affected(1))

	require.NoError(t, svc.Delete(context.Background(), imageID))
	assert.Equal(t, []string{"profiles/u/1-a.jpg"}, store.deletes)
	assert.NoError(t, mock.ExpectationsWereMet())

	mock.ExpectQuery(`SELECT \* FROM "profile_images"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))
	assert.ErrorIs(t, svc.Delete(context.Background(), imageID), ErrImageNotFound)
}
