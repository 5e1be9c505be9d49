// Package validation проверяет пользовательский ввод API комнат.
package validation

import (
	"fmt"
	"unicode/utf8"
)

const (
	// MinRoomNameLen минимальная длина имени комнаты
	MinRoomNameLen = 3
	// MaxRoomNameLen максимальная длина имени комнаты
	MaxRoomNameLen = 128
	// MaxDisplayNameLen максимальная длина имени участника
	MaxDisplayNameLen = 64
	// MinPasscodeLen минимальная длина кода доступа комнаты
	MinPasscodeLen = 8
)

// ValidateRoomName проверяет имя комнаты.
// Имя входит в материал деривации ключей, поэтому пустое недопустимо
func ValidateRoomName(name string) error {
	if name == "" {
		return fmt.Errorf("room name cannot be empty")
	}

	length := utf8.RuneCountInString(name)
	if length < MinRoomNameLen {
		return fmt.Errorf("room name must be at least %d characters long", MinRoomNameLen)
	}
	if length > MaxRoomNameLen {
		return fmt.Errorf("room name must not exceed %d characters", MaxRoomNameLen)
	}

	return nil
}

// ValidateDisplayName проверяет отображаемое имя участника
func ValidateDisplayName(name string) error {
	if name == "" {
		return fmt.Errorf("display name cannot be empty")
	}
	if utf8.RuneCountInString(name) > MaxDisplayNameLen {
		return fmt.Errorf("display name must not exceed %d characters", MaxDisplayNameLen)
	}
	return nil
}

// ValidatePasscode проверяет минимальные требования к коду доступа.
// Вызывается на клиенте до деривации ключей: relay сам код не видит
func ValidatePasscode(passcode string) error {
	if passcode == "" {
		return fmt.Errorf("passcode cannot be empty")
	}
	if utf8.RuneCountInString(passcode) < MinPasscodeLen {
		return fmt.Errorf("passcode must be at least %d characters long", MinPasscodeLen)
	}
	return nil
}
