package deploy

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opennotebook/internal/utils"
)

// requiredEnvKeys are the variables the deployment cannot reasonably run
// without; both env fixtures must mention them.
var requiredEnvKeys = []string{
	"OPENAI_API_BASE",
	"OPENAI_API_KEY",
	"DEFAULT_CHAT_MODEL",
	"SURREAL_ADDRESS",
	"SURREAL_USER",
	"SURREAL_PASS",
}

func dockerDir(t *testing.T) string {
	t.Helper()
	dir, err := utils.DockerDir()
	require.NoError(t, err, "docker directory not found")
	return dir
}

func loadShippedCompose(t *testing.T) *Compose {
	t.Helper()
	path, err := FindComposeFile(dockerDir(t))
	require.NoError(t, err)
	c, err := LoadCompose(path)
	require.NoError(t, err)
	return c
}

func TestComposeFileExistsAndParses(t *testing.T) {
	c := loadShippedCompose(t)
	assert.NotEmpty(t, c.Services)
}

func TestComposeDefinesRequiredServices(t *testing.T) {
	c := loadShippedCompose(t)

	assert.Contains(t, c.Services, "open-notebook")
	assert.Contains(t, c.Services, "surreal-db")
}

func TestOpenNotebookServiceConfiguration(t *testing.T) {
	c := loadShippedCompose(t)
	svc, ok := c.Services["open-notebook"]
	require.True(t, ok)

	assert.Contains(t, svc.Image, "open-notebook")
	assert.NotEmpty(t, svc.Ports)
	assert.Contains(t, svc.Ports[0], "8501")
	assert.False(t, svc.DependsOn.IsZero(), "open-notebook should depend on the database")
	assert.Contains(t, svc.Networks, "open-notebook-network")
}

func TestOpenNotebookEnvironmentUsesSubstitution(t *testing.T) {
	c := loadShippedCompose(t)
	svc := c.Services["open-notebook"]

	require.NotEmpty(t, svc.Environment)
	joined := strings.Join(svc.Environment, "\n")
	assert.Contains(t, joined, "${", "environment values should use ${VAR} substitution")
	for _, key := range requiredEnvKeys {
		assert.Contains(t, joined, key)
	}
}

func TestSurrealDBServiceConfiguration(t *testing.T) {
	c := loadShippedCompose(t)
	svc, ok := c.Services["surreal-db"]
	require.True(t, ok)

	assert.Contains(t, svc.Image, "surrealdb")
	assert.False(t, svc.Command.IsZero(), "surreal-db needs a start command")
	assert.NotEmpty(t, svc.Volumes)
	assert.False(t, svc.Healthcheck.IsZero(), "surreal-db needs a healthcheck")
}

func TestComposeDefinesNetworkAndVolume(t *testing.T) {
	c := loadShippedCompose(t)

	assert.Contains(t, c.Networks, "open-notebook-network")
	assert.Contains(t, c.Volumes, "surreal-data")
}

func TestEnvFixturesExist(t *testing.T) {
	dir := dockerDir(t)

	for _, name := range []string{".env", ".env.example"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, "%s missing from docker directory", name)
	}
}

func TestEnvFileCarriesRequiredKeys(t *testing.T) {
	vars, err := ReadEnvFile(filepath.Join(dockerDir(t), ".env"))
	require.NoError(t, err)

	for _, key := range requiredEnvKeys {
		assert.Contains(t, vars, key)
	}
}

func TestEnvExampleMirrorsEnv(t *testing.T) {
	example, err := ReadEnvFile(filepath.Join(dockerDir(t), ".env.example"))
	require.NoError(t, err)

	assert.Contains(t, example, "OPENAI_API_BASE")
	assert.Contains(t, example, "DEFAULT_CHAT_MODEL")
}

func TestFindComposeFile_MissingDir(t *testing.T) {
	_, err := FindComposeFile(t.TempDir())
	assert.Error(t, err)
}

func TestLoadCompose_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docker-compose.yaml")
	require.NoError(t, os.WriteFile(path, []byte("services: [unclosed"), 0o644))

	_, err := LoadCompose(path)
	assert.Error(t, err)
}

func TestReadEnvFile_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	vars, err := ReadEnvFile(path)
	require.NoError(t, err)
	assert.Empty(t, vars)
}
