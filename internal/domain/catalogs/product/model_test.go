package product

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/types"
)

func TestProduct_Validate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		p := NewProduct("PRD-001", "Widget", types.MustMoney("9.99"))
		require.NoError(t, p.Validate(ctx))
	})

	t.Run("blank name", func(t *testing.T) {
		p := NewProduct("PRD-001", "  ", types.MustMoney("9.99"))
		err := p.Validate(ctx)
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("negative price", func(t *testing.T) {
		p := NewProduct("PRD-001", "Widget", types.MustMoney("-0.01"))
		err := p.Validate(ctx)
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("blank sku", func(t *testing.T) {
		p := NewProduct("PRD-001", "Widget", types.MustMoney("1.00"))
		blank := " "
		p.SKU = &blank
		err := p.Validate(ctx)
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("zero price allowed on catalog", func(t *testing.T) {
		p := NewProduct("PRD-001", "Sample", types.ZeroMoney())
		require.NoError(t, p.Validate(ctx))
	})
}
