package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperationResult_JSONRoundTrip(t *testing.T) {
	completed := time.Date(2024, 8, 15, 9, 0, 1, 500_000_000, time.UTC)

	tests := []struct {
		name    string
		kind    OperationKind
		payload Payload
	}{
		{
			name: "compile",
			kind: KindCompile,
			payload: &CompileResult{
				Success:      true,
				WasmSize:     61234,
				Timestamp:    FormatTimestamp(completed),
				ContractHash: "ab12",
			},
		},
		{
			name: "deploy",
			kind: KindDeploy,
			payload: &DeployResult{
				Success:         true,
				Network:         "testnet",
				ContractID:      "C123",
				Timestamp:       FormatTimestamp(completed),
				TransactionHash: "cd34",
			},
		},
		{
			name: "invoke",
			kind: KindInvoke,
			payload: &InvokeResult{
				Success:         true,
				Result:          []interface{}{"Hello", "Developer"},
				Timestamp:       FormatTimestamp(completed),
				GasUsed:         512,
				TransactionHash: "ef56",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := &OperationResult{
				RequestID:   "r1",
				Kind:        tt.kind,
				Success:     true,
				Payload:     tt.payload,
				CompletedAt: completed,
			}

			data, err := json.Marshal(original)
			require.NoError(t, err)

			var decoded OperationResult
			require.NoError(t, json.Unmarshal(data, &decoded))

			assert.Equal(t, original, &decoded)
			assert.Equal(t, tt.kind, decoded.Payload.OperationKind())
		})
	}
}

func TestOperationResult_UnmarshalInsideRecord(t *testing.T) {
	data := []byte(`{"request":{"id":"r1","kind":"deploy","input":"","issued_at":"2024-08-15T09:00:00Z"},
		"status":"completed",
		"result":{"request_id":"r1","kind":"deploy","success":true,"payload":{"contractId":"C1"},"completed_at":"2024-08-15T09:00:02Z"},
		"updated_at":"2024-08-15T09:00:02Z"}`)

	var rec OperationRecord
	require.NoError(t, json.Unmarshal(data, &rec))
	require.NotNil(t, rec.Result)

	deploy, ok := rec.Result.Payload.(*DeployResult)
	require.True(t, ok)
	assert.Equal(t, "C1", deploy.ContractID)
}

func TestOperationResult_UnmarshalErrors(t *testing.T) {
	var r OperationResult

	err := json.Unmarshal([]byte(`{"kind":"upgrade","payload":{}}`), &r)
	assert.ErrorIs(t, err, ErrUnknownKind)

	err = json.Unmarshal([]byte(`{"kind":"compile","payload":{"wasmSize":"big"}}`), &r)
	assert.Error(t, err)

	require.NoError(t, json.Unmarshal([]byte(`{"kind":"compile","payload":null}`), &r))
	assert.Nil(t, r.Payload)
}
