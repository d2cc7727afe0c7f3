// Package adapters はドメインのリポジトリインターフェースに対する具体的な実装を提供します。
package adapters

import (
	"context"
	"errors"
	"strings"

	gomysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"idea_backend/internal/feature/auth/domain"
	"idea_backend/internal/feature/auth/domain/entity"
	"idea_backend/internal/feature/auth/usecase"
)

// userMySQL はGORMを使用してユーザーを永続化するリポジトリ実装です。
type userMySQL struct {
	db *gorm.DB
}

// コンパイル時のインターフェース実装チェック
var _ usecase.UserRepository = (*userMySQL)(nil)

// NewUserMySQL はGORM接続を使用するユーザーリポジトリを生成します。
func NewUserMySQL(db *gorm.DB) *userMySQL {
	return &userMySQL{db: db}
}

// Create は新しいユーザーを挿入します。
// ユニークインデックス違反はdomainの重複エラーに変換されます。
func (r *userMySQL) Create(ctx context.Context, user *entity.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// FindByEmail はメールアドレスでユーザーを1件取得します。
func (r *userMySQL) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByAlias はエイリアスでユーザーを1件取得します。
func (r *userMySQL) FindByAlias(ctx context.Context, alias string) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).Where("alias = ?", alias).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByID は主キーでユーザーを1件取得します。
func (r *userMySQL) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindAll は全ユーザーを作成日時の昇順で取得します。
func (r *userMySQL) FindAll(ctx context.Context) ([]entity.User, error) {
	var users []entity.User
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Update は既存ユーザーの全フィールドを保存します。
func (r *userMySQL) Update(ctx context.Context, user *entity.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// Delete は指定IDのユーザーを削除します。
// レコードが存在しない場合はdomain.ErrUserNotFoundを返します。
func (r *userMySQL) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entity.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// translateError はドライバー固有のエラーをdomainのエラーに変換します。
// MySQLのエラー1062（Duplicate entry）はインデックス名で
// メール重複とエイリアス重複を区別します。
func translateError(err error) error {
	var mysqlErr *gomysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return duplicateKind(mysqlErr.Message)
	}
	// SQLiteドライバーはUNIQUE制約違反をメッセージでしか伝えない
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return duplicateKind(err.Error())
	}
	return err
}

// duplicateKind は重複エラーメッセージからどのカラムが衝突したかを判定します。
func duplicateKind(message string) error {
	if strings.Contains(message, "alias") {
		return domain.ErrDuplicateAlias
	}
	return domain.ErrDuplicateEmail
}
