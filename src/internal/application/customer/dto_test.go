package customer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackyeh168/crm_dashboard/src/internal/domain/customer"
)

func TestRecordDTO_UnmarshalLooseValues(t *testing.T) {
	// Arrange
	body := `{
		"customerName": "佐藤",
		"nextAction": null,
		"hasHeart": "true",
		"hasTrouble": 1,
		"isFavorite": "no",
		"transactionCount": 3,
		"totalAmount": 12000.5,
		"age": true
	}`

	// Act
	var dto RecordDTO
	err := json.Unmarshal([]byte(body), &dto)

	// Assert
	require.NoError(t, err)
	r := dto.ToRecord()
	assert.Equal(t, "佐藤", r.CustomerName)
	assert.Equal(t, "", r.NextAction)
	assert.Equal(t, "", r.Notes, "missing text reads as empty")
	assert.True(t, r.HasHeart)
	assert.True(t, r.HasTrouble)
	assert.False(t, r.IsFavorite)
	assert.Equal(t, "3", r.TransactionCount)
	assert.Equal(t, "12000.5", r.TotalAmount)
	assert.Equal(t, "true", r.Age)
	assert.False(t, r.Key.IsEmpty(), "a key is assigned when absent")
}

func TestRecordDTO_UnmarshalRejectsStructuredValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"object in text field", `{"customerName": {"a": 1}}`},
		{"array in flag field", `{"hasHeart": [true]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dto RecordDTO
			assert.Error(t, json.Unmarshal([]byte(tt.body), &dto))
		})
	}
}

func TestRecordDTO_KeepsValidKey(t *testing.T) {
	// Arrange
	key := customer.NewRecordKey()
	original := customer.Record{Key: key, CustomerName: "田中", IsFavorite: true}

	// Act
	back := FromRecord(original).ToRecord()

	// Assert
	assert.True(t, back.Key.Equals(key))
	assert.Equal(t, original, back)
}
