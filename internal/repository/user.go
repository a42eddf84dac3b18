package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bigkaa/gofilesmanager/internal/domain/model"
)

// usersCollection — имя коллекции пользователей.
const usersCollection = "users"

// userRepo — реализация UserRepository поверх коллекции users.
type userRepo struct {
	coll *mongo.Collection
}

// NewUserRepository создаёт репозиторий пользователей.
func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepo{coll: db.Collection(usersCollection)}
}

// EnsureIndexes создаёт unique index по email.
// Идемпотентно: повторный вызов с той же моделью — no-op.
func (r *userRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("ошибка создания индекса users.email: %w", err)
	}
	return nil
}

// Insert сохраняет нового пользователя. Дубликат email — ErrDuplicate:
// уникальность гарантирует индекс, окно check-then-insert отсутствует.
func (r *userRepo) Insert(ctx context.Context, user *model.User) (primitive.ObjectID, error) {
	res, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, ErrDuplicate
		}
		return primitive.NilObjectID, fmt.Errorf("ошибка вставки пользователя: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("неожиданный тип InsertedID: %T", res.InsertedID)
	}
	user.ID = id
	return id, nil
}
