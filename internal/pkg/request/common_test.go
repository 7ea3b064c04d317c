package request

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

func TestPageIndex(t *testing.T) {
	tests := []struct {
		name string
		from int
		size int
		want int
	}{
		{"zero offset", 0, 10, 0},
		{"aligned offset", 20, 10, 2},
		{"non aligned offset rounds down", 15, 10, 1},
		{"offset smaller than size", 3, 10, 0},
		{"negative offset", -5, 10, 0},
		{"zero size", 5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PageIndex(tt.from, tt.size))
		})
	}
}

func TestOffsetParams_Offset(t *testing.T) {
	assert.Equal(t, 0, OffsetParams{From: 0, Size: 10}.Offset())
	assert.Equal(t, 10, OffsetParams{From: 15, Size: 10}.Offset())
	assert.Equal(t, 4, OffsetParams{From: 5, Size: 2}.Offset())
}

func TestByIDRequest_Binding(t *testing.T) {
	assert.NoError(t, binding.Validator.ValidateStruct(&ByIDRequest{ID: "8f14e45f-ceea-467f-a8c4-5b1e0f1e5d2a"}))
	assert.Error(t, binding.Validator.ValidateStruct(&ByIDRequest{ID: "42"}))
	assert.Error(t, binding.Validator.ValidateStruct(&ByIDRequest{}))
}
