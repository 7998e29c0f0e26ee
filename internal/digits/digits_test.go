package digits

import (
	"bytes"
	"context"
	"io"
	"math"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abgdnv/inventory/internal/platform/prompt"
)

func Test_Count(t *testing.T) {
	testCases := []struct {
		n        int64
		expected int
	}{
		{n: 0, expected: 1},
		{n: 7, expected: 1},
		{n: -7, expected: 1},
		{n: 9, expected: 1},
		{n: 10, expected: 2},
		{n: -123, expected: 3},
		{n: 1000, expected: 4},
		{n: 999999, expected: 6},
		{n: math.MaxInt64, expected: 19},
		{n: math.MinInt64, expected: 19},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, Count(tc.n), "Count(%d)", tc.n)
	}
}

func Test_CountBig(t *testing.T) {
	testCases := []struct {
		in       string
		expected int
	}{
		{in: "0", expected: 1},
		{in: "-123", expected: 3},
		{in: "123456789012345678901234567890", expected: 30},
		{in: "-100000000000000000000", expected: 21},
	}

	for _, tc := range testCases {
		n, ok := new(big.Int).SetString(tc.in, 10)
		require.True(t, ok)
		assert.Equal(t, tc.expected, CountBig(n), "CountBig(%s)", tc.in)
	}
}

func Test_Parse(t *testing.T) {
	testCases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "42", want: "42"},
		{in: " -0042 ", want: "-42"},
		{in: "+5", want: "5"},
		{in: "12.5", wantErr: true},
		{in: "1e3", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			n, err := Parse(tc.in)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrNotInteger)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, n.String())
		})
	}
}

func Test_Run(t *testing.T) {
	testCases := []struct {
		name     string
		args     []string
		input    string
		wantCode int
		wantOut  string
	}{
		{
			name:     "argument",
			args:     []string{"-123"},
			wantCode: ExitSuccess,
			wantOut:  "O número -123 tem 3 dígito(s).\n",
		},
		{
			name:     "fractional argument",
			args:     []string{"12.5"},
			wantCode: ExitInvalidInput,
			wantOut:  "Entrada inválida: \"12.5\" não é um inteiro.\n",
		},
		{
			name:     "extra arguments are ignored",
			args:     []string{"1000", "x"},
			wantCode: ExitSuccess,
			wantOut:  "O número 1000 tem 4 dígito(s).\n",
		},
		{
			name:     "interactive",
			input:    "  0\n",
			wantCode: ExitSuccess,
			wantOut:  "Digite um número inteiro (positivo ou negativo): O número 0 tem 1 dígito(s).\n",
		},
		{
			name:     "interactive empty",
			input:    "   \n",
			wantCode: ExitInvalidInput,
			wantOut:  "Digite um número inteiro (positivo ou negativo): Por favor, informe um número inteiro.\n",
		},
		{
			name:     "interactive invalid",
			input:    "sete\n",
			wantCode: ExitInvalidInput,
			wantOut:  "Digite um número inteiro (positivo ou negativo): Entrada inválida: \"sete\" não é um inteiro.\n",
		},
		{
			name:     "interactive long number",
			input:    strings.Repeat("9", 70000) + "\n",
			wantCode: ExitSuccess,
			wantOut:  "Digite um número inteiro (positivo ou negativo): O número " + strings.Repeat("9", 70000) + " tem 70000 dígito(s).\n",
		},
		{
			name:     "interactive number over the line limit",
			input:    strings.Repeat("9", prompt.MaxLineLength+1) + "\n",
			wantCode: ExitInvalidInput,
			wantOut:  "Digite um número inteiro (positivo ou negativo): \nEntrada inválida: número muito longo.\n",
		},
		{
			name:     "interactive eof",
			input:    "",
			wantCode: ExitInvalidInput,
			wantOut:  "Digite um número inteiro (positivo ou negativo): \nEntrada cancelada.\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			var out bytes.Buffer
			// when
			code := Run(context.Background(), tc.args, strings.NewReader(tc.input), &out)
			// then
			assert.Equal(t, tc.wantCode, code)
			assert.Equal(t, tc.wantOut, out.String())
		})
	}
}

func Test_Run_Cancelled(t *testing.T) {
	// given
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })
	var out bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// when
	code := Run(ctx, nil, pr, &out)
	// then
	assert.Equal(t, ExitInvalidInput, code)
	assert.Contains(t, out.String(), "Entrada cancelada.")
}
