package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

func TestEventRefs(t *testing.T) {
	occurrence := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		refs []domain.EventRef
		want []EventRefResponse
	}{
		{
			name: "nil becomes empty list",
			refs: nil,
			want: []EventRefResponse{},
		},
		{
			name: "plain refs",
			refs: []domain.EventRef{{Kind: domain.KindAppointment, ID: 1}, {Kind: domain.KindBlock, ID: 2}},
			want: []EventRefResponse{{Kind: "appointment", ID: 1}, {Kind: "block", ID: 2}},
		},
		{
			name: "recurring block occurrence",
			refs: []domain.EventRef{domain.OccurrenceRef(3, occurrence)},
			want: []EventRefResponse{{Kind: "block", ID: 3, OccurrenceStart: "2025-03-10T15:00:00Z"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EventRefs(tt.refs))
		})
	}
}
