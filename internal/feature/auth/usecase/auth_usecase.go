// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"

	"idea_backend/internal/feature/auth/domain"
	"idea_backend/internal/feature/auth/domain/entity"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 8

	// aliasMinLength / aliasMaxLength はエイリアスの文字数制限を定義します。
	aliasMinLength = 3
	aliasMaxLength = 30

	// verificationTokenTTL は確認コードの有効期間です。
	// 確認エンドポイントは未実装のため、コードは保存されるだけです。
	verificationTokenTTL = 24 * time.Hour
)

// emailRegexp はメールアドレスの基本形式（local@domain.tld）を検証します。
var emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// メールアドレスまたはエイリアスが重複する場合、domainの重複エラーを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByAlias は指定されたエイリアスに一致するユーザーを取得します。
	FindByAlias(ctx context.Context, alias string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// Update は既存ユーザーの全フィールドを保存します。
	Update(ctx context.Context, user *entity.User) error
}

// PasswordHasher はパスワードのハッシュ化と検証を抽象化します。
type PasswordHasher interface {
	// Hash は平文パスワードからソルト付きハッシュを導出します。
	Hash(plaintext string) (string, error)
	// Verify は平文がハッシュの元になったかどうかを返します。
	Verify(plaintext, hash string) bool
}

// TokenIssuer はセッショントークンの発行を抽象化します。
type TokenIssuer interface {
	// Issue は指定されたユーザーの署名済みトークンを生成します。
	Issue(userID uint) (string, error)
}

// SignupInput は新規登録の入力フィールドです。
type SignupInput struct {
	Name            string
	Alias           string
	Email           string
	DateOfBirth     string // "2006-01-02"形式、任意
	Address         string // 任意
	Password        string
	ConfirmPassword string
}

// UpdateProfileInput はプロフィール更新の入力フィールドです。
type UpdateProfileInput struct {
	Name         string
	Alias        string
	Email        string
	DateOfBirth  string
	Address      string
	ProfilePhoto string // 任意。データURI以外は無視される
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users  UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, hasher PasswordHasher, tokens TokenIssuer) *authUsecase {
	return &authUsecase{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// normalizeEmail はメールアドレスをトリムして小文字化します。
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// generateVerificationCode は6桁の数字の確認コードを生成します。
func generateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// Signup は新規ユーザーを登録し、セッショントークンを発行します。
// 構造バリデーション→一意性チェック→永続化の順で実行します。
// 一意性の最終保証はストアのユニークインデックスであり、
// 事前チェックはわかりやすいエラーメッセージのためだけに行います。
func (u *authUsecase) Signup(ctx context.Context, in SignupInput) (*entity.User, string, error) {
	name := strings.TrimSpace(in.Name)
	alias := strings.TrimSpace(in.Alias)
	email := normalizeEmail(in.Email)
	address := strings.TrimSpace(in.Address)

	if name == "" || alias == "" || email == "" || in.Password == "" || in.ConfirmPassword == "" {
		return nil, "", domain.Validation("all fields are required")
	}
	if !emailRegexp.MatchString(email) {
		return nil, "", domain.Validation("invalid email format")
	}
	if in.Password != in.ConfirmPassword {
		return nil, "", domain.Validation("passwords do not match")
	}
	if len(in.Password) < minPasswordLength {
		return nil, "", domain.Validation(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	if len(alias) < aliasMinLength || len(alias) > aliasMaxLength {
		return nil, "", domain.Validation(fmt.Sprintf("alias must be between %d and %d characters", aliasMinLength, aliasMaxLength))
	}

	dob, err := parseDateOfBirth(in.DateOfBirth)
	if err != nil {
		return nil, "", err
	}

	// 一意性の事前チェック（友好的なエラーメッセージ用）
	if err := u.checkEmailAvailable(ctx, email, 0); err != nil {
		return nil, "", err
	}
	if err := u.checkAliasAvailable(ctx, alias, 0); err != nil {
		return nil, "", err
	}

	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	code, err := generateVerificationCode()
	if err != nil {
		return nil, "", err
	}

	now := time.Now()
	verificationExpiry := now.Add(verificationTokenTTL)
	user := &entity.User{
		Name:                       name,
		Alias:                      alias,
		Email:                      email,
		DateOfBirth:                dob,
		Address:                    address,
		Password:                   hashed,
		Role:                       entity.RoleUser,
		IsVerified:                 false,
		LastLogin:                  now,
		VerificationToken:          code,
		VerificationTokenExpiresAt: &verificationExpiry,
	}

	if err := u.users.Create(ctx, user); err != nil {
		// 事前チェックとインサートの間のレース。
		// ユニークインデックス違反もConflictとして返す。
		return nil, "", translateDuplicate(err)
	}

	token, err := u.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

// Login はユーザーを認証し、成功時にユーザーとJWTトークンを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもハッシュ比較を実行します。
func (u *authUsecase) Login(ctx context.Context, email, pass string) (*entity.User, string, error) {
	email = normalizeEmail(email)

	if email == "" || pass == "" {
		return nil, "", domain.Validation("all fields are required")
	}
	if !emailRegexp.MatchString(email) {
		return nil, "", domain.Validation("invalid email format")
	}

	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// ユーザー未検出でも応答時間を揃えるためにダミーハッシュと比較する
			u.hasher.Verify(pass, dummyHash)
			return nil, "", domain.NotFound("user not found")
		}
		return nil, "", err
	}

	if !u.hasher.Verify(pass, user.Password) {
		return nil, "", domain.Unauthorized("invalid credentials")
	}

	user.LastLogin = time.Now()
	if err := u.users.Update(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := u.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

// dummyHash はユーザー未検出時のタイミング攻撃緩和用ダミーハッシュです。
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UpdateProfile は認証済みユーザーのプロフィールを更新します。
// メールアドレスとエイリアスの一意性チェックは本人のレコードを除外します。
func (u *authUsecase) UpdateProfile(ctx context.Context, userID uint, in UpdateProfileInput) (*entity.User, error) {
	name := strings.TrimSpace(in.Name)
	alias := strings.TrimSpace(in.Alias)
	email := normalizeEmail(in.Email)
	address := strings.TrimSpace(in.Address)

	if name == "" || alias == "" || email == "" || in.DateOfBirth == "" || address == "" {
		return nil, domain.Validation("all fields are required")
	}
	if !emailRegexp.MatchString(email) {
		return nil, domain.Validation("invalid email format")
	}
	if len(alias) < aliasMinLength || len(alias) > aliasMaxLength {
		return nil, domain.Validation(fmt.Sprintf("alias must be between %d and %d characters", aliasMinLength, aliasMaxLength))
	}

	dob, err := parseDateOfBirth(in.DateOfBirth)
	if err != nil {
		return nil, err
	}

	if err := u.checkEmailAvailable(ctx, email, userID); err != nil {
		return nil, err
	}
	if err := u.checkAliasAvailable(ctx, alias, userID); err != nil {
		return nil, err
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.NotFound("user not found")
		}
		return nil, err
	}

	user.Name = name
	user.Alias = alias
	user.Email = email
	user.DateOfBirth = dob
	user.Address = address
	// 写真は埋め込みデータURIと認識できた場合のみ適用する。
	// 欠落や不正な値はエラーではなく、既存の写真を維持する。
	if strings.HasPrefix(in.ProfilePhoto, "data:") {
		user.ProfilePhoto = in.ProfilePhoto
	}

	if err := u.users.Update(ctx, user); err != nil {
		return nil, translateDuplicate(err)
	}

	return user, nil
}

// ChangePassword は本人確認のうえパスワードを更新します。
func (u *authUsecase) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return domain.Validation("old and new passwords are required")
	}
	if len(newPassword) < minPasswordLength {
		return domain.Validation(fmt.Sprintf("new password must be at least %d characters", minPasswordLength))
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.NotFound("user not found")
		}
		return err
	}

	if !u.hasher.Verify(oldPassword, user.Password) {
		return domain.Unauthorized("old password is incorrect")
	}

	hashed, err := u.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.Password = hashed
	return u.users.Update(ctx, user)
}

// parseDateOfBirth は"2006-01-02"形式の生年月日を解析します。空文字はnilを返します。
func parseDateOfBirth(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, domain.Validation("invalid date of birth, expected YYYY-MM-DD")
	}
	return &t, nil
}

// checkEmailAvailable はメールアドレスが他のユーザーに使われていないことを確認します。
// excludeIDが0以外の場合、そのユーザー自身のレコードは除外されます。
func (u *authUsecase) checkEmailAvailable(ctx context.Context, email string, excludeID uint) error {
	existing, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != excludeID {
		return domain.Conflict("a user with this email already exists")
	}
	return nil
}

// checkAliasAvailable はエイリアスが他のユーザーに使われていないことを確認します。
func (u *authUsecase) checkAliasAvailable(ctx context.Context, alias string, excludeID uint) error {
	existing, err := u.users.FindByAlias(ctx, alias)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != excludeID {
		return domain.Conflict("this alias is already used")
	}
	return nil
}

// translateDuplicate はストアのユニークインデックス違反をConflictエラーに変換します。
func translateDuplicate(err error) error {
	switch {
	case errors.Is(err, domain.ErrDuplicateEmail):
		return domain.Conflict("a user with this email already exists")
	case errors.Is(err, domain.ErrDuplicateAlias):
		return domain.Conflict("this alias is already used")
	default:
		return err
	}
}
