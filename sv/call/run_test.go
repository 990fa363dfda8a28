package call

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grailbio/svcaller/sv/config"
)

func TestRunRequiresBAMFile(t *testing.T) {
	cfg := config.Default()
	_, err := Run(context.Background(), &cfg)
	assert.Error(t, err)
}

func TestRunLiteRequiresBounds(t *testing.T) {
	cfg := config.Default()
	cfg.BAMFile = "/dev/null"
	cfg.Lite = true
	_, err := Run(context.Background(), &cfg)
	assert.Error(t, err)
}
