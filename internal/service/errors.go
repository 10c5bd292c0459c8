package service

import "errors"

var (
	// ErrItemNotFound — элемента с таким id нет.
	ErrItemNotFound = errors.New("item not found")
	// ErrValidation — не заполнены обязательные поля или неверный тип.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidCredentials не различает «нет пользователя» и «неверный пароль».
	ErrInvalidCredentials = errors.New("invalid credentials")
)
