package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// User — зарегистрированный пользователь. Запись неизменяема после создания.
type User struct {
	// ID — идентификатор пользователя, присваивается MongoDB при вставке
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	// Email — электронная почта, уникальна (unique index в коллекции users)
	Email string `bson:"email" json:"email"`
	// PasswordHash — hex SHA-1 хэш пароля. Никогда не сериализуется в JSON.
	PasswordHash string `bson:"password" json:"-"`
}
