package editor

import "errors"

// Ошибки валидации editing surface.
// Отклоняются локально, до мутации Store, и не уходят remote репликам.
var (
	// ErrNotNotary операция доступна только роли notary
	ErrNotNotary = errors.New("operation requires notary role")

	// ErrInvalidFieldType тип поля не входит в закрытый набор
	ErrInvalidFieldType = errors.New("invalid field type")

	// ErrFieldTypeInUse тип поля уже занят другим участником
	ErrFieldTypeInUse = errors.New("field type is already in use")

	// ErrFieldNotFound поле не найдено
	ErrFieldNotFound = errors.New("field not found")
)
