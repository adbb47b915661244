package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

type Configs struct {
	Env string `toml:"env"`

	Log              LogConfigs       `toml:"log"`
	Database         DatabaseConfigs  `toml:"database"`
	ApiServer        ServerConfigs    `toml:"api_server"`
	PrometheusServer ServerConfigs    `toml:"prometheus_server"`
	Redis            RedisConfigs     `toml:"redis"`
	Kafka            KafkaConfigs     `toml:"kafka"`
	Profile          ProfileConfigs   `toml:"profile"`
	Solana           SolanaConfigs    `toml:"solana"`
	Blockchain       RPCServerConfigs `toml:"blockchain"`
	Mint             MintConfigs      `toml:"mint"`
}

type LogConfigs struct {
	Level string `toml:"level"`
	JSON  bool   `toml:"json"`
}

type DatabaseConfigs struct {
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Database string `toml:"database"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	LogLevel string `toml:"log_level"`
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host         string   `toml:"host"`
	Port         string   `toml:"port"`
	AllowOrigins []string `toml:"allow_origins"`
}

func (c ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

type RPCServerConfigs struct {
	ServerConfigs
	RPCName string `toml:"rpc_name"`

	// Endpoint is used by callers to reach the rpc server. Empty means the
	// transaction service runs in-process.
	Endpoint string `toml:"endpoint"`
}

type RedisConfigs struct {
	Addr string `toml:"addr"`
}

type KafkaConfigs struct {
	Addr     string `toml:"addr"`
	ClientID string `toml:"client_id"`
}

type ProfileConfigs struct {
	Endpoints []string      `toml:"endpoints"`
	Path      string        `toml:"path"`
	Timeout   time.Duration `toml:"timeout"`

	// APIKey is sent as a bearer token when set.
	APIKey string `toml:"api_key"`
}

type SolanaConfigs struct {
	RPCEndpoint string `toml:"rpc_endpoint"`
	Commitment  string `toml:"commitment"`

	// ProgramID is the on-chain program exposing the create_asset instruction.
	ProgramID string `toml:"program_id"`

	// RegistryAccount is the fixed account the program uses to track mints.
	RegistryAccount string `toml:"registry_account"`

	// ExtraAccounts are appended read-only to the create_asset instruction,
	// e.g. the asset program the on-chain program CPIs into.
	ExtraAccounts []string `toml:"extra_accounts"`

	MintCostLamports uint64        `toml:"mint_cost_lamports"`
	PendingTTL       time.Duration `toml:"pending_ttl"`
	KeypairPath      string        `toml:"keypair_path"`
}

type MintConfigs struct {
	// PointsThreshold gates the dscvr points slot. Zero keeps the slot always
	// eligible.
	PointsThreshold  uint64 `toml:"points_threshold"`
	EnforceSupplyCap bool   `toml:"enforce_supply_cap"`

	// Guard is "memory" or "redis". The redis guard is shared between
	// processes minting with the same wallet.
	Guard        string                 `toml:"guard"`
	GuardTTL     time.Duration          `toml:"guard_ttl"`
	OutcomeTopic string                 `toml:"outcome_topic"`
	Catalog      []NFTConfigs           `toml:"catalog"`
	Rules        map[string]RuleConfigs `toml:"rules"`
}

type NFTConfigs struct {
	CodeName    string `toml:"code_name"`
	Name        string `toml:"name"`
	Description string `toml:"description"`
	Image       string `toml:"image"`
}

type RuleConfigs struct {
	Field     string `toml:"field"`
	Threshold uint64 `toml:"threshold"`
}

const (
	FirstFollowerCodeName  = "first_follower"
	ThreeDayStreakCodeName = "three_day_streak"
	DscvrPointsCodeName    = "dscvr_points"
)

// Default returns the configurations used when no file is given.
func Default() Configs {
	return Configs{
		Env: "local",
		Log: LogConfigs{Level: "INFO"},
		Database: DatabaseConfigs{
			Host:     "localhost",
			Port:     "3306",
			Database: "nftgallery",
			User:     "root",
			LogLevel: "warn",
		},
		ApiServer:        ServerConfigs{Port: "8080", AllowOrigins: []string{"*"}},
		PrometheusServer: ServerConfigs{Port: "9090"},
		Redis:            RedisConfigs{Addr: "localhost:6379"},
		Kafka:            KafkaConfigs{ClientID: "nftgallery"},
		Profile: ProfileConfigs{
			Endpoints: []string{"https://api.dscvr.one"},
			Path:      "/graphql",
			Timeout:   10 * time.Second,
		},
		Solana: SolanaConfigs{
			RPCEndpoint:      "https://api.devnet.solana.com",
			Commitment:       "confirmed",
			RegistryAccount:  "5ahNFeoYAS4HayZWK6osa6ZiocNojNJcfzgUJASicRbf",
			MintCostLamports: 3_000_000,
			PendingTTL:       time.Minute,
		},
		Blockchain: RPCServerConfigs{
			ServerConfigs: ServerConfigs{Port: "8081"},
			RPCName:       "nft",
		},
		Mint: MintConfigs{
			Guard:        "memory",
			GuardTTL:     2 * time.Minute,
			OutcomeTopic: "mint_outcome",
			Catalog: []NFTConfigs{
				{
					CodeName:    FirstFollowerCodeName,
					Name:        "First Follower",
					Description: "Awarded once somebody follows you.",
				},
				{
					CodeName:    ThreeDayStreakCodeName,
					Name:        "Streak Starter",
					Description: "Keep a streak for three days in a row.",
				},
				{
					CodeName:    DscvrPointsCodeName,
					Name:        "Point Collector",
					Description: "Collect dscvr points.",
				},
			},
			Rules: map[string]RuleConfigs{
				FirstFollowerCodeName:  {Field: "follower_count", Threshold: 1},
				ThreeDayStreakCodeName: {Field: "streak_day_count", Threshold: 3},
			},
		},
	}
}

// Load reads the optional .env file and TOML file on top of Default, then
// applies environment overrides.
func Load(path string) (Configs, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Configs{}, fmt.Errorf("cannot decode config file %s: %w", path, err)
		}
	}

	overrideString(&cfg.Env, "ENV")
	overrideString(&cfg.Log.Level, "LOG_LEVEL")
	overrideString(&cfg.Database.Host, "DB_HOST")
	overrideString(&cfg.Database.Port, "DB_PORT")
	overrideString(&cfg.Database.Database, "DB_NAME")
	overrideString(&cfg.Database.User, "DB_USER")
	overrideString(&cfg.Database.Password, "DB_PASSWORD")
	overrideString(&cfg.ApiServer.Port, "API_PORT")
	overrideString(&cfg.Redis.Addr, "REDIS_ADDRESS")
	overrideString(&cfg.Kafka.Addr, "KAFKA_ADDRESS")
	overrideString(&cfg.Profile.APIKey, "PROFILE_API_KEY")
	overrideString(&cfg.Solana.RPCEndpoint, "SOLANA_RPC_ENDPOINT")
	overrideString(&cfg.Solana.ProgramID, "SOLANA_PROGRAM_ID")
	overrideString(&cfg.Solana.KeypairPath, "SOLANA_KEYPAIR_PATH")
	overrideString(&cfg.Blockchain.Endpoint, "BLOCKCHAIN_RPC_ENDPOINT")
	overrideString(&cfg.Mint.Guard, "MINT_GUARD")

	if cfg.Mint.Rules == nil {
		cfg.Mint.Rules = map[string]RuleConfigs{}
	}

	// The points slot is driven by a single knob so the gate can be switched on
	// without rewriting the rule table.
	if cfg.Mint.PointsThreshold > 0 {
		cfg.Mint.Rules[DscvrPointsCodeName] = RuleConfigs{
			Field:     "dscvr_points",
			Threshold: cfg.Mint.PointsThreshold,
		}
	}

	return cfg, nil
}

func overrideString(target *string, env string) {
	if value := os.Getenv(env); value != "" {
		*target = value
	}
}
