// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ClassPlan Contributors

package store

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var migrationNamePattern = regexp.MustCompile(`^\d{6}_[a-z0-9_]+\.(up|down)\.sql$`)

// Every embedded migration must follow the NNNNNN_name.(up|down).sql
// pattern and carry a matching down file.
func TestMigrationsFS_EmbeddedFiles(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, entry := range entries {
		name := entry.Name()
		assert.Regexp(t, migrationNamePattern, name)

		if matched := migrationNamePattern.FindStringSubmatch(name); matched != nil {
			base := name[:len(name)-len("."+matched[1]+".sql")]
			switch matched[1] {
			case "up":
				ups[base] = true
			case "down":
				downs[base] = true
			}
		}
	}

	assert.Equal(t, ups, downs, "every up migration needs a matching down migration")
}

func TestAllMigrationVersions(t *testing.T) {
	versions, err := allMigrationVersions()
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 2, 3, 4}, versions)

	// Mutating the returned slice must not poison the cache.
	versions[0] = 99
	again, err := allMigrationVersions()
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 2, 3, 4}, again)
}
