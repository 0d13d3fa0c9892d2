package config

import (
	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type NATSConfig struct {
	Host   string       `mapstructure:"host"`
	Port   int          `mapstructure:"port"`
	Stream StreamConfig `mapstructure:"stream"`
}

type StreamConfig struct {
	Name     string   `mapstructure:"name"`
	Subjects []string `mapstructure:"subjects"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

// CourseConfig describes the fixed course setup: 18 pars, the per-hole
// stroke index (1 = hardest), and the course/slope ratings used for
// handicap conversion.
type CourseConfig struct {
	Name        string  `mapstructure:"name"`
	Pars        []int   `mapstructure:"pars"`
	StrokeIndex []int   `mapstructure:"strokeindex"`
	Rating      float64 `mapstructure:"rating"`
	Slope       int     `mapstructure:"slope"`
}

// TeamConfig is the static team roster. Alternates, when set, name the
// members who take turns counting in sum-match play.
type TeamConfig struct {
	Name       string   `mapstructure:"name"`
	Color      string   `mapstructure:"color"`
	Members    []string `mapstructure:"members"`
	Alternates []string `mapstructure:"alternates"`
}

type PlayerConfig struct {
	Name          string   `mapstructure:"name"`
	HandicapIndex *float64 `mapstructure:"handicap"`
}

type TournamentConfig struct {
	Name        string         `mapstructure:"name"`
	TotalRounds int            `mapstructure:"totalrounds"`
	Players     []PlayerConfig `mapstructure:"players"`
}

// SnapshotConfig selects where aggregate snapshots are persisted.
// Backend is "file" or "postgres".
type SnapshotConfig struct {
	Backend string `mapstructure:"backend"`
	Dir     string `mapstructure:"dir"`
}

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	NATS       NATSConfig       `mapstructure:"nats"`
	Course     CourseConfig     `mapstructure:"course"`
	Teams      []TeamConfig     `mapstructure:"teams"`
	Tournament TournamentConfig `mapstructure:"tournament"`
	Snapshots  SnapshotConfig   `mapstructure:"snapshots"`
}

func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func init() {
	viper.AutomaticEnv()
}
