// Package iocli отделяет терминальный ввод-вывод клиента от команд.
// Команды комнат пишут через этот интерфейс, а код доступа читается
// скрытым вводом; тесты подставляют fake вместо терминала.
package iocli

//go:generate moq -out io_mock.go . IO

// IO терминальный ввод-вывод команд клиента
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
	ReadInput(prompt string) (string, error)

	// ReadPassword читает код доступа комнаты без эха в терминал
	ReadPassword(prompt string) (string, error)

	// Write позволяет использовать IO как io.Writer (например, для логов)
	Write(p []byte) (n int, err error)
}
