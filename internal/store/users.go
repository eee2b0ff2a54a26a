package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/skillsenselab/quizapi/internal/auth"
)

// UserRepository persists accounts. It doubles as the credential source for
// the login verifier.
type UserRepository struct {
	db *gorm.DB
}

// List returns all users.
func (r *UserRepository) List(ctx context.Context) ([]User, error) {
	var users []User
	if err := r.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, translate(err, "user")
	}
	return users, nil
}

// ByID returns the user with the given id.
func (r *UserRepository) ByID(ctx context.Context, id uint) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, translate(err, "user")
	}
	return &u, nil
}

// ByUsername returns the user with the given username, or nil when absent.
func (r *UserRepository) ByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, translate(err, "user")
	}
	return &u, nil
}

// ByEmail returns the user with the given email, or nil when absent.
func (r *UserRepository) ByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, translate(err, "user")
	}
	return &u, nil
}

// Create inserts a new user.
func (r *UserRepository) Create(ctx context.Context, u *User) error {
	return translate(r.db.WithContext(ctx).Create(u).Error, "user")
}

// Update saves all fields of an existing user.
func (r *UserRepository) Update(ctx context.Context, u *User) error {
	return translate(r.db.WithContext(ctx).Save(u).Error, "user")
}

// Delete removes the user with the given id.
func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&User{}, id)
	if res.Error != nil {
		return translate(res.Error, "user")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "user")
	}
	return nil
}

// FindCredential looks up the stored credential for a username. An unknown
// username yields (nil, nil) so the verifier can report it uniformly with a
// bad password.
func (r *UserRepository) FindCredential(ctx context.Context, username string) (*auth.StoredCredential, error) {
	u, err := r.ByUsername(ctx, username)
	if err != nil || u == nil {
		return nil, err
	}
	return &auth.StoredCredential{
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Roles:        []string{u.Role},
	}, nil
}
