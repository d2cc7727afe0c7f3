// Package usecase はusersフィーチャー（管理者向けユーザー管理）のビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"idea_backend/internal/feature/auth/domain"
	"idea_backend/internal/feature/auth/domain/entity"
)

const (
	aliasMinLength = 3
	aliasMaxLength = 30
)

var emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UserRepository はユーザー管理に必要な永続化操作を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase)が定義します。
type UserRepository interface {
	// FindAll は全ユーザーを作成日時の昇順で取得します。
	FindAll(ctx context.Context) ([]entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByAlias は指定されたエイリアスに一致するユーザーを取得します。
	FindByAlias(ctx context.Context, alias string) (*entity.User, error)

	// Update は既存ユーザーの全フィールドを保存します。
	Update(ctx context.Context, user *entity.User) error

	// Delete は指定IDのユーザーを削除します。
	Delete(ctx context.Context, id uint) error
}

// UpdateUserInput は管理者によるユーザー更新の入力フィールドです。
type UpdateUserInput struct {
	Name        string
	Alias       string
	Email       string
	DateOfBirth string
	Address     string
	Role        string
}

// usersUsecase は管理者向けユーザー管理のビジネスロジックを実装します。
type usersUsecase struct {
	users UserRepository
}

// NewUsersUsecase はusersUsecaseの新しいインスタンスを生成します。
func NewUsersUsecase(users UserRepository) *usersUsecase {
	return &usersUsecase{users: users}
}

// List は全ユーザーを取得します。
func (u *usersUsecase) List(ctx context.Context) ([]entity.User, error) {
	return u.users.FindAll(ctx)
}

// Update は指定ユーザーのプロフィールとロールを更新します。
// バリデーションと一意性チェックはプロフィール更新と同一で、
// 対象ユーザー自身のレコードは除外されます。
func (u *usersUsecase) Update(ctx context.Context, id uint, in UpdateUserInput) (*entity.User, error) {
	name := strings.TrimSpace(in.Name)
	alias := strings.TrimSpace(in.Alias)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	address := strings.TrimSpace(in.Address)
	role := strings.TrimSpace(in.Role)

	if name == "" || alias == "" || email == "" || in.DateOfBirth == "" || address == "" || role == "" {
		return nil, domain.Validation("all fields are required")
	}
	if !emailRegexp.MatchString(email) {
		return nil, domain.Validation("invalid email format")
	}
	if len(alias) < aliasMinLength || len(alias) > aliasMaxLength {
		return nil, domain.Validation(fmt.Sprintf("alias must be between %d and %d characters", aliasMinLength, aliasMaxLength))
	}
	if role != entity.RoleUser && role != entity.RoleAdmin {
		return nil, domain.Validation("role must be user or admin")
	}

	dob, err := time.Parse("2006-01-02", in.DateOfBirth)
	if err != nil {
		return nil, domain.Validation("invalid date of birth, expected YYYY-MM-DD")
	}

	if existing, err := u.users.FindByEmail(ctx, email); err == nil && existing.ID != id {
		return nil, domain.Conflict("a user with this email already exists")
	} else if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if existing, err := u.users.FindByAlias(ctx, alias); err == nil && existing.ID != id {
		return nil, domain.Conflict("this alias is already used")
	} else if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.NotFound("user not found")
		}
		return nil, err
	}

	user.Name = name
	user.Alias = alias
	user.Email = email
	user.DateOfBirth = &dob
	user.Address = address
	user.Role = role

	if err := u.users.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateEmail):
			return nil, domain.Conflict("a user with this email already exists")
		case errors.Is(err, domain.ErrDuplicateAlias):
			return nil, domain.Conflict("this alias is already used")
		default:
			return nil, err
		}
	}

	return user, nil
}

// Delete は指定ユーザーを削除します。
// 管理者が自分自身を削除することはできません（最後の管理者のロックアウト防止）。
func (u *usersUsecase) Delete(ctx context.Context, callerID, id uint) error {
	if callerID == id {
		return domain.Validation("you cannot delete your own account")
	}
	if err := u.users.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.NotFound("user not found")
		}
		return err
	}
	return nil
}
