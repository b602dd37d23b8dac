package version

import (
	"runtime/debug"
	"strings"
)

var (
	// Essas variáveis serão preenchidas durante a compilação via ldflags
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// VersionInfo retorna informações estruturadas sobre a versão atual
type VersionInfo struct {
	Version    string `json:"version"`
	CommitHash string `json:"commit_hash"`
	BuildDate  string `json:"build_date"`
}

// GetCurrentVersion retorna as informações de versão atuais. Quando o binário
// não foi compilado com ldflags, tenta extrair a versão do build info do
// módulo (instalação via go install).
func GetCurrentVersion() VersionInfo {
	v := Version
	commit := CommitHash

	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if info.Main.Version != "" && info.Main.Version != "(devel)" {
				v = strings.TrimPrefix(info.Main.Version, "v")
			}
			for _, setting := range info.Settings {
				if setting.Key == "vcs.revision" && commit == "unknown" {
					commit = setting.Value
				}
			}
		}
	}

	return VersionInfo{
		Version:    v,
		CommitHash: commit,
		BuildDate:  BuildDate,
	}
}
