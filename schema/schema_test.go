package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignedTechPrecedence(t *testing.T) {
	assert.Equal(t, "A", Ticket{Tech: "A"}.AssignedTech())
	assert.Equal(t, "B", Ticket{TechAssigned: "B"}.AssignedTech())
	// When both fields carry a value, "Tecnico Asignado" wins.
	assert.Equal(t, "B", Ticket{Tech: "A", TechAssigned: "B"}.AssignedTech())
	assert.Equal(t, "", Ticket{}.AssignedTech())
}

func TestTicketUnmarshalsWireFieldNames(t *testing.T) {
	payload := []byte(`{
		"No.": "1001",
		"Date": "2025-10-01 09:00:00",
		"Status": "Abierto",
		"Tech": "Jose Castro [jose.castro]",
		"Tecnico Asignado": "Saul Recinos [saul.recinos]",
		"Encuesta": "5"
	}`)

	var ticket Ticket
	require.NoError(t, json.Unmarshal(payload, &ticket))
	assert.Equal(t, "1001", ticket.No)
	assert.Equal(t, "Jose Castro [jose.castro]", ticket.Tech)
	assert.Equal(t, "Saul Recinos [saul.recinos]", ticket.TechAssigned)
	assert.Equal(t, "Saul Recinos [saul.recinos]", ticket.AssignedTech())
}
