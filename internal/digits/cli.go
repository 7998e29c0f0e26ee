package digits

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/abgdnv/inventory/internal/platform/prompt"
)

// Exit codes returned by Run.
const (
	ExitSuccess      = 0
	ExitInvalidInput = 1
)

// Run executes the digit counter. The first element of args is used as the
// number when present; otherwise the number is read interactively from in.
func Run(ctx context.Context, args []string, in io.Reader, out io.Writer) int {
	var raw string
	if len(args) > 0 {
		raw = args[0]
	} else {
		p := prompt.New(in, out)
		defer p.Close()
		line, err := p.Ask(ctx, "Digite um número inteiro (positivo ou negativo): ")
		if errors.Is(err, prompt.ErrLineTooLong) {
			fmt.Fprintln(out, "\nEntrada inválida: número muito longo.")
			return ExitInvalidInput
		}
		if err != nil {
			fmt.Fprintln(out, "\nEntrada cancelada.")
			return ExitInvalidInput
		}
		raw = strings.TrimSpace(line)
		if raw == "" {
			fmt.Fprintln(out, "Por favor, informe um número inteiro.")
			return ExitInvalidInput
		}
	}

	n, err := Parse(raw)
	if err != nil {
		fmt.Fprintf(out, "Entrada inválida: \"%s\" não é um inteiro.\n", raw)
		return ExitInvalidInput
	}
	fmt.Fprintf(out, "O número %s tem %d dígito(s).\n", n.String(), CountBig(n))
	return ExitSuccess
}
