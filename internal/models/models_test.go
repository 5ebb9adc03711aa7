package models

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func TestTableNames(t *testing.T) {
	cache := &sync.Map{}
	naming := schema.NamingStrategy{}

	tests := []struct {
		model any
		table string
	}{
		{&PayFastTransaction{}, "payfast_transactions"},
		{&Payment{}, "payments"},
		{&UserSubscription{}, "user_subscriptions"},
		{&SiteSetting{}, "site_settings"},
	}
	for _, tt := range tests {
		s, err := schema.Parse(tt.model, cache, naming)
		require.NoError(t, err)
		assert.Equal(t, tt.table, s.Table)
	}
}
