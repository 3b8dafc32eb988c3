package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	flag "github.com/spf13/pflag"
)

var cfg *koanf.Koanf

const (
	CMD                = "cmd"
	LOG_LEVEL          = "log.level"
	TOGGL_TOKEN        = "toggl.token"
	TOGGL_WORKSPACE    = "toggl.workspace"
	TOGGL_URL          = "toggl.url"
	GOOGLE_CREDENTIALS = "google.credentials"
	GOOGLE_TOKEN       = "google.token"
	GOOGLE_CALENDAR_ID = "google.calendarid"
	ICS_PATH           = "ics.path"
	CALDAV_URL         = "caldav.url"
	CALDAV_USER        = "caldav.user"
	CALDAV_PASS        = "caldav.pass"
	CALDAV_PATH        = "caldav.path"
	SINK               = "sink"
	SYNC_START         = "start-date"
	SYNC_END           = "end-date"
	SYNC_DAYS          = "days"
	SYNC_PREVIEW       = "preview"
	SYNC_DEDUP         = "dedup"
	SYNC_CRON          = "cron"
	CURRENT_STOP       = "stop"
	prefix             = "TOGGLCAL_"
)

// ErrMissing marks a required config key that was not supplied.
var ErrMissing = errors.New("missing required config")

func Gist() *koanf.Koanf {
	if cfg == nil {
		ini()
	}
	return cfg
}

func Sprint() string {
	sb := strings.Builder{}
	sb.WriteString("toggl_token|required|-\n")
	sb.WriteString("toggl_workspace|optional|-\n")
	sb.WriteString("google_credentials|required for google sink|-\n")
	sb.WriteString("google_token|optional|token.json\n")
	sb.WriteString("google_calendarid|optional|primary\n")
	sb.WriteString("ics_path|optional|togglcal.ics\n")
	sb.WriteString("caldav_url|required for caldav sink|-\n")
	sb.WriteString("caldav_user|optional|-\n")
	sb.WriteString("caldav_pass|optional|-\n")
	sb.WriteString("caldav_path|optional|-\n")
	sb.WriteString("sink|optional|google\n")
	sb.WriteString("log_level|optional|info\n")
	return sb.String()
}

func ini() {
	cfg = koanf.New(".")
	cfg.Set(LOG_LEVEL, "info")
	cfg.Set(SINK, "google")
	cfg.Set(TOGGL_URL, "https://api.track.toggl.com/api/v9")
	cfg.Set(GOOGLE_TOKEN, "token.json")
	cfg.Set(GOOGLE_CALENDAR_ID, "primary")
	cfg.Set(ICS_PATH, "togglcal.ics")
	cfg.Set(SYNC_DEDUP, true)
	cfg.Set(SYNC_CRON, "0 0 * * * * *")

	f := flag.NewFlagSet("config", flag.ContinueOnError)
	f.ParseErrorsWhitelist.UnknownFlags = true
	f.Usage = func() {
		fmt.Println(f.FlagUsages())
		os.Exit(0)
	}

	f.String(LOG_LEVEL, "info", "log level")
	f.String(TOGGL_TOKEN, "", "toggl api token")
	f.Int64(TOGGL_WORKSPACE, 0, "toggl workspace id")
	f.String(TOGGL_URL, "https://api.track.toggl.com/api/v9", "toggl api base url")
	f.String(GOOGLE_CREDENTIALS, "", "path to google oauth credentials json")
	f.String(GOOGLE_TOKEN, "token.json", "path to stored google oauth token")
	f.String(GOOGLE_CALENDAR_ID, "primary", "target google calendar id")
	f.String(ICS_PATH, "togglcal.ics", "output path for the ics sink")
	f.String(CALDAV_URL, "", "caldav server url")
	f.String(CALDAV_USER, "", "caldav user")
	f.String(CALDAV_PASS, "", "caldav password")
	f.String(CALDAV_PATH, "", "caldav collection path")
	f.String(SINK, "google", "calendar sink: google, ics, caldav, noop")
	f.StringP(SYNC_START, "s", "", "range start date, YYYY-MM-DD")
	f.StringP(SYNC_END, "e", "", "range end date, YYYY-MM-DD")
	f.IntP(SYNC_DAYS, "d", 0, "sync the past N days, mutually exclusive with an explicit range")
	f.BoolP(SYNC_PREVIEW, "p", false, "preview mode, do not create events")
	f.Bool(SYNC_DEDUP, true, "skip entries that already have a synced event")
	f.String(SYNC_CRON, "0 0 * * * * *", "cron expression for the schedule command")
	f.Bool(CURRENT_STOP, false, "stop the running entry after showing it")
	f.Parse(os.Args[1:])

	// Environment first, flags win on conflict.
	cfg.Load(env.Provider(prefix, ".", envKey), nil)
	if err := cfg.Load(posflag.Provider(f, ".", cfg), nil); err != nil {
		log.Panic().Err(err).Msg("error loading config")
	}
	if f.NArg() > 0 {
		cfg.Set(CMD, f.Arg(0))
	}
	lvl, err := zerolog.ParseLevel(cfg.String(LOG_LEVEL))
	if err != nil {
		log.Panic().Err(err).Msg("error parsing log level")
	}
	zerolog.SetGlobalLevel(lvl)

	printCfg()
}

// Validate checks the keys a command cannot run without. Sink-specific keys
// are only required when that sink is selected.
func Validate(cmd string) error {
	switch cmd {
	case "sync", "schedule", "current":
		if !isSet(TOGGL_TOKEN) {
			return errors.Wrap(ErrMissing, TOGGL_TOKEN)
		}
	}
	if cmd == "calendars" || ((cmd == "sync" || cmd == "schedule") && Gist().String(SINK) == "google") {
		if !isSet(GOOGLE_CREDENTIALS) {
			return errors.Wrap(ErrMissing, GOOGLE_CREDENTIALS)
		}
	}
	if (cmd == "sync" || cmd == "schedule") && Gist().String(SINK) == "caldav" {
		if !isSet(CALDAV_URL) {
			return errors.Wrap(ErrMissing, CALDAV_URL)
		}
	}
	return nil
}

// Range keys use hyphens to match the CLI flags, which underscores cannot
// spell after the dot substitution, so they are mapped explicitly.
var envHyphenKeys = map[string]string{
	"start.date": SYNC_START,
	"end.date":   SYNC_END,
}

func envKey(s string) string {
	key := strings.Replace(strings.ToLower(
		strings.TrimPrefix(s, prefix)), "_", ".", -1)
	if mapped, ok := envHyphenKeys[key]; ok {
		return mapped
	}
	return key
}

func isSet(key string) bool {
	return Gist().String(key) != ""
}

func printCfg() {
	log.Debug().Msgf("cmd: %s", cfg.String(CMD))
	log.Debug().Msgf("log_level: %s", cfg.String(LOG_LEVEL))
	log.Debug().Msgf("sink: %s", cfg.String(SINK))
	log.Debug().Msgf("toggl_workspace: %d", cfg.Int64(TOGGL_WORKSPACE))
	log.Debug().Msgf("toggl_url: %s", cfg.String(TOGGL_URL))
	log.Debug().Msgf("google_credentials: %s", cfg.String(GOOGLE_CREDENTIALS))
	log.Debug().Msgf("google_token: %s", cfg.String(GOOGLE_TOKEN))
	log.Debug().Msgf("google_calendarid: %s", cfg.String(GOOGLE_CALENDAR_ID))
	log.Debug().Msgf("ics_path: %s", cfg.String(ICS_PATH))
	log.Debug().Msgf("caldav_url: %s", cfg.String(CALDAV_URL))
}
