// errors.go — sentinel-ошибки бизнес-логики Files Manager.
// Обработчики транслируют их в HTTP-ответы; сообщения ответов
// фиксированы контрактом API и живут в слое handlers.
package service

import "errors"

var (
	// ErrMissingName — имя записи не задано.
	ErrMissingName = errors.New("имя не задано")
	// ErrMissingType — тип записи не задан или не входит в допустимые.
	ErrMissingType = errors.New("тип не задан или недопустим")
	// ErrMissingData — payload обязателен для file/image, но отсутствует
	// либо не является корректным base64.
	ErrMissingData = errors.New("данные не заданы")
	// ErrParentNotFound — parentId некорректен или запись не существует.
	ErrParentNotFound = errors.New("родитель не найден")
	// ErrParentNotFolder — parentId указывает на запись, не являющуюся папкой.
	ErrParentNotFolder = errors.New("родитель не является папкой")
	// ErrNotFound — запись не существует либо принадлежит другому владельцу.
	// Эти случаи намеренно неразличимы: чужие записи не должны
	// обнаруживаться перебором идентификаторов.
	ErrNotFound = errors.New("запись не найдена")

	// ErrMissingEmail — email не задан при регистрации.
	ErrMissingEmail = errors.New("email не задан")
	// ErrMissingPassword — пароль не задан при регистрации.
	ErrMissingPassword = errors.New("пароль не задан")
	// ErrEmailTaken — пользователь с таким email уже существует.
	ErrEmailTaken = errors.New("email уже занят")
)
