package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/facturio/internal/domain/entity"
)

func TestInvoiceStatus_TransicionesPermitidas(t *testing.T) {
	assert.True(t, entity.StatusDraft.CanTransitionTo(entity.StatusSent))
	assert.True(t, entity.StatusSent.CanTransitionTo(entity.StatusPaid))
}

func TestInvoiceStatus_TransicionesProhibidas(t *testing.T) {
	// Sin retrocesos
	assert.False(t, entity.StatusSent.CanTransitionTo(entity.StatusDraft))
	assert.False(t, entity.StatusPaid.CanTransitionTo(entity.StatusSent))
	assert.False(t, entity.StatusPaid.CanTransitionTo(entity.StatusDraft))
	// Sin saltos
	assert.False(t, entity.StatusDraft.CanTransitionTo(entity.StatusPaid))
	// Sin auto-transiciones (la idempotencia se resuelve en el repositorio)
	assert.False(t, entity.StatusSent.CanTransitionTo(entity.StatusSent))
}

func TestInvoiceStatus_PaidEsTerminal(t *testing.T) {
	assert.True(t, entity.StatusPaid.IsTerminal())
	assert.False(t, entity.StatusDraft.IsTerminal())
	assert.False(t, entity.StatusSent.IsTerminal())
}

func TestInvoiceStatus_Valid(t *testing.T) {
	assert.True(t, entity.StatusDraft.Valid())
	assert.True(t, entity.StatusSent.Valid())
	assert.True(t, entity.StatusPaid.Valid())
	assert.False(t, entity.InvoiceStatus("cancelled").Valid())
	assert.False(t, entity.InvoiceStatus("").Valid())
}
