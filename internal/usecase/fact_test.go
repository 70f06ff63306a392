package usecase

import (
	"errors"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/naka-gawa/profile-stats/internal/facts"
	"github.com/naka-gawa/profile-stats/internal/gateway"
)

func newTestRotator(t *testing.T, fsys gateway.Filesystem) *FactRotator {
	catalog, err := facts.NewCatalog([]string{"Go was announced in 2009."})
	require.NoError(t, err)
	return NewFactRotator(catalog, facts.NewPatcher(""), fsys, rand.New(rand.NewPCG(7, 7)), zap.NewNop())
}

func TestFactRotator_Rotate(t *testing.T) {
	testCases := []struct {
		name            string
		doc             string
		readErr         error
		writeErr        error
		expectWrite     string
		expectedOutcome facts.Outcome
		expectError     bool
	}{
		{
			name:            "replaces the fact line",
			doc:             "- ⚡ Fun fact **old**\n",
			expectWrite:     "- ⚡ Fun fact **Go was announced in 2009.**\n",
			expectedOutcome: facts.Replaced,
		},
		{
			name:            "inserts after the anchor",
			doc:             "- 📫 How to reach me **me@example.com**\n",
			expectWrite:     "- 📫 How to reach me **me@example.com**\n- ⚡ Fun fact **Go was announced in 2009.**\n",
			expectedOutcome: facts.Inserted,
		},
		{
			name:            "unchanged documents are not written",
			doc:             "# nothing here\n",
			expectedOutcome: facts.Unchanged,
		},
		{
			name:        "error case - read fails",
			readErr:     errors.New("permission denied"),
			expectError: true,
		},
		{
			name:        "error case - write fails",
			doc:         "- ⚡ Fun fact **old**\n",
			expectWrite: "- ⚡ Fun fact **Go was announced in 2009.**\n",
			writeErr:    errors.New("disk full"),
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fsys := new(mockFS)
			if tc.readErr != nil {
				fsys.On("ReadFile", "README.md").Return(nil, tc.readErr)
			} else {
				fsys.On("ReadFile", "README.md").Return([]byte(tc.doc), nil)
			}
			if tc.expectWrite != "" {
				fsys.On("WriteFile", "README.md", []byte(tc.expectWrite)).Return(tc.writeErr)
			}

			rotation, err := newTestRotator(t, fsys).Rotate("README.md")

			if tc.expectError {
				assert.Error(t, err)
				assert.Nil(t, rotation)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.expectedOutcome, rotation.Outcome)
				assert.Equal(t, "Go was announced in 2009.", rotation.Fact)
			}
			if tc.expectWrite == "" {
				fsys.AssertNotCalled(t, "WriteFile", mock.Anything, mock.Anything)
			}
			fsys.AssertExpectations(t)
		})
	}
}

func TestFactRotator_RotateOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "README.md")
	require.NoError(t, os.WriteFile(path, []byte("intro\n- ⚡ Fun fact **old**\n"), 0o600))

	rotation, err := newTestRotator(t, gateway.NewLocalFS()).Rotate(path)
	require.NoError(t, err)
	assert.Equal(t, facts.Replaced, rotation.Outcome)
	assert.Equal(t, "old", rotation.Previous)
	assert.Equal(t, 2, rotation.Line)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "intro\n- ⚡ Fun fact **Go was announced in 2009.**\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
