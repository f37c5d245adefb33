package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithServiceName(t *testing.T) {
	old := serviceName
	t.Cleanup(func() { serviceName = old })

	serviceName = "doc-pager-api"
	assert.Equal(t, Fields{"service_name": "doc-pager-api"}, withServiceName(nil))
	assert.Equal(t, Fields{"service_name": "custom"}, withServiceName(Fields{"service_name": "custom"}))

	serviceName = ""
	assert.Equal(t, Fields{"a": 1}, withServiceName(Fields{"a": 1}))
}

func TestInitFallsBackToInfo(t *testing.T) {
	old := Log
	t.Cleanup(func() { Log = old })

	Init("  ", "")
	assert.NotNil(t, Log)
	InfoWithFields("logger test", Fields{"k": "v"})
	WarnWithFields("logger test", nil)
}
