package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/verity-labs/verity/internal/core/domain"
)

func TestSearchCmd_Use(t *testing.T) {
	assert.Equal(t, "search [query]", searchCmd.Use)
}

func TestSearchCmd_RequiresScope(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	// Flag state persists across Execute calls; clear it so the
	// required-flag check sees the flag as unset.
	searchCmd.Flags().Lookup("scope").Changed = false

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search", "refund"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "required flag(s)")
}

func TestSearchCmd_ErrorsWithoutService(t *testing.T) {
	oldRetrieval := retrievalService
	retrievalService = nil
	defer func() { retrievalService = oldRetrieval }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search", "--scope", "acme", "refund"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestSearchCmd_PrintsRankedResults(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "--scope", "acme", "refund"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Results:")
	assert.Contains(t, out, "[1] (2) Employee Handbook: Refunds take 30 days.")
}

func TestSearchCmd_NoMatches(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	retrievalService = &stubRetrievalService{results: []domain.EvidenceItem{}}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "--scope", "acme", "cafeteria"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "No matching chunks.")
}

func TestSearchCmd_JSONOutput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "--json", "--scope", "acme", "refund"})
	defer func() {
		rootCmd.SetArgs(nil)
		searchJSON = false
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "\"source\": \"Employee Handbook\"")
	assert.Contains(t, buf.String(), "\"score\": 2")
}

func TestSearchCmd_PropagatesServiceError(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	retrievalService = &stubRetrievalService{err: errors.New("store offline")}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search", "--scope", "acme", "refund"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "store offline")
}
