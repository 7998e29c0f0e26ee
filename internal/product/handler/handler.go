// Package handler provides the interactive menu for product-related operations.
package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/abgdnv/inventory/internal/platform/contextkeys"
	"github.com/abgdnv/inventory/internal/platform/prompt"
	producterrors "github.com/abgdnv/inventory/internal/product/errors"
	"github.com/abgdnv/inventory/internal/product/service"
)

const separator = "----------------------------------------"

// Menu drives the add/list/remove loop over a Register.
type Menu struct {
	register service.Register
	prompt   *prompt.Prompter
	out      io.Writer
	logger   *slog.Logger
}

// NewMenu creates a new Menu reading choices from in and writing to out.
func NewMenu(register service.Register, in io.Reader, out io.Writer, logger *slog.Logger) *Menu {
	return &Menu{
		register: register,
		prompt:   prompt.New(in, out),
		out:      out,
		logger:   logger.With("component", "menu"),
	}
}

// Run shows the menu until the user chooses to exit or the input is closed.
// A failed operation is reported and the loop continues; only a cancelled
// ctx ends Run with an error. Unread input is dropped when Run returns, so a
// Menu runs once.
func (m *Menu) Run(ctx context.Context) error {
	defer m.prompt.Close()
	for {
		m.printMenu()
		opCtx := contextkeys.WithOperationID(ctx, uuid.NewString())
		choice, err := m.prompt.Ask(ctx, "Escolha uma opção (1-4): ")
		switch {
		case errors.Is(err, prompt.ErrInputClosed):
			fmt.Fprintln(m.out, "\nEntrada encerrada. Saindo...")
			return nil
		case err != nil && ctx.Err() != nil:
			return ctx.Err()
		case err != nil:
			m.report(opCtx, err)
			continue
		}

		switch strings.TrimSpace(choice) {
		case "1":
			err = m.add(opCtx)
		case "2":
			m.list()
		case "3":
			err = m.remove(opCtx)
		case "4":
			fmt.Fprintln(m.out, "\nSalvando dados e saindo... Até logo!")
			return nil
		default:
			m.logger.DebugContext(opCtx, "Invalid menu option", "choice", choice)
			fmt.Fprintln(m.out, "\nOpção inválida. Por favor, digite um número de 1 a 4.")
		}

		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			m.report(opCtx, err)
		}
	}
}

func (m *Menu) printMenu() {
	fmt.Fprintf(m.out, "\n--- GERENCIADOR DE ESTOQUE (LIMITE: %d) ---\n", service.MaxProducts)
	fmt.Fprintln(m.out, "1 - Incluir novo produto")
	fmt.Fprintln(m.out, "2 - Listar produtos cadastrados")
	fmt.Fprintln(m.out, "3 - Remover produto")
	fmt.Fprintln(m.out, "4 - Sair do programa")
}

func (m *Menu) add(ctx context.Context) error {
	if m.register.Count() >= service.MaxProducts {
		return producterrors.ErrLimitReached
	}

	fmt.Fprintln(m.out, "\n--- Inclusão de Novo Produto ---")
	var in service.ProductInput
	steps := []struct {
		label string
		field service.Field
		dest  *string
	}{
		{label: "Nome do produto: ", field: service.FieldName, dest: &in.Name},
		{label: "Preço unitário (R$): ", field: service.FieldPrice, dest: &in.Price},
		{label: "Quantidade em estoque: ", field: service.FieldQuantity, dest: &in.Quantity},
	}
	for _, step := range steps {
		value, err := m.prompt.Ask(ctx, step.label)
		if err != nil {
			return err
		}
		if err := service.ValidateField(step.field, value); err != nil {
			return err
		}
		*step.dest = value
	}

	added, err := m.register.Add(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Produto '%s' adicionado com sucesso!\n", added.Name)
	return nil
}

func (m *Menu) list() {
	fmt.Fprintln(m.out, "\n--- Relação de Produtos Cadastrados ---")
	products := m.register.List()
	if len(products) == 0 {
		fmt.Fprintln(m.out, "Nenhum produto cadastrado.")
		return
	}

	fmt.Fprintf(m.out, "Total de produtos: %d / %d\n", len(products), service.MaxProducts)
	fmt.Fprintln(m.out, separator)
	for i, p := range products {
		fmt.Fprintf(m.out, "Produto %d:\n", i+1)
		fmt.Fprintf(m.out, "  Nome:       %s\n", p.Name)
		fmt.Fprintf(m.out, "  Preço:      R$ %s\n", p.Price.StringFixed(2))
		fmt.Fprintf(m.out, "  Quantidade: %d un.\n", p.Quantity)
		fmt.Fprintln(m.out, separator)
	}
}

func (m *Menu) remove(ctx context.Context) error {
	fmt.Fprintln(m.out, "\n--- Remoção de Produto ---")
	if m.register.Count() == 0 {
		fmt.Fprintln(m.out, "Nenhum produto cadastrado para remover.")
		return nil
	}

	name, err := m.prompt.Ask(ctx, "Digite o nome exato do produto a ser removido: ")
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)

	_, err = m.register.Remove(ctx, name, m.confirm)
	if errors.Is(err, producterrors.ErrProductNotFound) {
		fmt.Fprintf(m.out, "Erro: Produto com o nome '%s' não encontrado.\n", name)
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Produto '%s' removido com sucesso.\n", name)
	return nil
}

// confirm accepts only "s" (any case) as an affirmative answer.
func (m *Menu) confirm(ctx context.Context, p service.ProductDto) (bool, error) {
	fmt.Fprintf(m.out, "Produto encontrado: %s (Preço: R$ %s)\n", p.Name, p.Price.StringFixed(2))
	answer, err := m.prompt.Ask(ctx, "Tem certeza que deseja remover este produto? (s/n): ")
	if err != nil {
		return false, err
	}
	return strings.EqualFold(answer, "s"), nil
}

// report prints the user-facing message for a failed operation.
func (m *Menu) report(ctx context.Context, err error) {
	switch {
	case errors.Is(err, prompt.ErrInputClosed):
		fmt.Fprintln(m.out, "\nEntrada cancelada.")
	case errors.Is(err, prompt.ErrLineTooLong):
		fmt.Fprintln(m.out, "\nErro: Entrada muito longa.")
	case errors.Is(err, producterrors.ErrLimitReached):
		fmt.Fprintf(m.out, "\nErro: Limite de %d produtos atingido. Não é possível adicionar mais.\n", service.MaxProducts)
	case errors.Is(err, producterrors.ErrEmptyName):
		fmt.Fprintln(m.out, "Erro: O nome não pode ser vazio.")
	case errors.Is(err, producterrors.ErrMalformedNumber):
		fmt.Fprintln(m.out, "\nErro: Entrada inválida. Preço deve ser um número (ex: 10.50) e quantidade um inteiro (ex: 100).")
	case errors.Is(err, producterrors.ErrInvalidPrice):
		fmt.Fprintln(m.out, "Erro: O preço não pode ser negativo.")
	case errors.Is(err, producterrors.ErrInvalidQuantity):
		fmt.Fprintln(m.out, "Erro: A quantidade não pode ser negativa.")
	case errors.Is(err, producterrors.ErrRemovalCancelled):
		fmt.Fprintln(m.out, "Remoção cancelada.")
	default:
		m.logger.ErrorContext(ctx, "Unexpected error", "error", err)
		fmt.Fprintf(m.out, "\nOcorreu um erro inesperado: %v\n", err)
	}
}
