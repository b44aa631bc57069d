package logger

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomFormatter(t *testing.T) {
	l := logrus.New()
	var buf bytes.Buffer
	l.SetOutput(&buf)
	l.SetFormatter(&CustomFormatter{})

	l.WithField("sector", "textile").Warn("collected nothing")

	out := buf.String()
	assert.Contains(t, out, "[WARN]")
	assert.Contains(t, out, "collected nothing sector=textile")
}

func TestInitLoggerWithFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "app.log")
	require.NoError(t, InitLogger(Options{Level: "debug", File: file}))
	assert.Equal(t, logrus.DebugLevel, Log.GetLevel())

	require.NoError(t, InitLogger(Options{Level: "bogus"}))
	assert.Equal(t, logrus.InfoLevel, Log.GetLevel())
}

func TestKratosLoggerForwards(t *testing.T) {
	prev := Log
	defer func() { Log = prev }()

	Log = logrus.New()
	var buf bytes.Buffer
	Log.SetOutput(&buf)
	Log.SetFormatter(&CustomFormatter{})

	h := log.NewHelper(NewKratosLogger())
	h.Infow(log.DefaultMessageKey, "server started", "addr", ":8000")

	assert.Contains(t, buf.String(), "[INFO]")
	assert.Contains(t, buf.String(), "server started addr=:8000")
}

func TestKratosLoggerReportsCallSite(t *testing.T) {
	prev := Log
	defer func() { Log = prev }()

	Log = logrus.New()
	Log.SetReportCaller(true)
	var buf bytes.Buffer
	Log.SetOutput(&buf)
	Log.SetFormatter(&CustomFormatter{})

	log.NewHelper(NewKratosLogger()).Infof("analysis done for %s", "textile")

	out := buf.String()
	assert.Contains(t, out, "[logger_test.go:")
	assert.NotContains(t, out, "[kratos.go:")
	assert.NotContains(t, out, " caller=")
	assert.Contains(t, out, "analysis done for textile")
}
