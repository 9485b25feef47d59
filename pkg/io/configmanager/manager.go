package configmanager

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"

	"github.com/cvoctl-io/cvoctl/pkg/apis/config/v1alpha1"
	"github.com/cvoctl-io/cvoctl/pkg/utils/notify"
	"github.com/cvoctl-io/cvoctl/pkg/utils/timer"
	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

const (
	// EnvPrefix is the prefix for environment variable overrides (CVOCTL_*).
	EnvPrefix = "CVOCTL"
	// ConfigFileName is the base name of the config file searched in the
	// working directory.
	ConfigFileName = "cvoctl"
)

var (
	// ErrNegativeAttempts is returned when the bootstrap attempt budget is
	// negative.
	ErrNegativeAttempts = errors.New("override attempts must not be negative")
	// ErrUnsupportedConfigVersion is returned when a config file declares an
	// apiVersion or kind this build does not understand.
	ErrUnsupportedConfigVersion = errors.New("unsupported config apiVersion or kind")
)

// ConfigManager loads v1alpha1.Config values from defaults, the config file,
// environment variables, and CLI flags.
type ConfigManager struct {
	Viper          *viper.Viper
	fieldSelectors []FieldSelector[v1alpha1.Config]
	Config         *v1alpha1.Config
	Writer         io.Writer

	command         *cobra.Command
	configLoaded    bool
	configFileFound bool
}

// NewConfigManager creates a configuration manager with the specified field
// selectors. The Viper instance is initialized with config paths and
// environment handling.
func NewConfigManager(
	writer io.Writer,
	fieldSelectors ...FieldSelector[v1alpha1.Config],
) *ConfigManager {
	return &ConfigManager{
		Viper:          InitializeViper(),
		fieldSelectors: fieldSelectors,
		Config:         v1alpha1.NewConfig(),
		Writer:         writer,
		configLoaded:   false,
	}
}

// NewCommandConfigManager constructs a ConfigManager bound to the provided
// Cobra command. It registers the supplied field selectors as flags and
// writes notifications to the command's standard output writer.
func NewCommandConfigManager(
	cmd *cobra.Command,
	selectors []FieldSelector[v1alpha1.Config],
) *ConfigManager {
	manager := NewConfigManager(cmd.OutOrStdout(), selectors...)
	manager.command = cmd
	manager.AddFlagsFromFields(cmd)

	return manager
}

// InitializeViper creates a Viper instance wired for cvoctl: config file
// discovery in the working directory plus CVOCTL_* environment overrides.
func InitializeViper() *viper.Viper {
	viperInstance := viper.New()

	viperInstance.SetConfigName(ConfigFileName)
	viperInstance.SetConfigType("yaml")
	viperInstance.AddConfigPath(".")

	viperInstance.SetEnvPrefix(EnvPrefix)
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viperInstance.AutomaticEnv()

	// AutomaticEnv alone does not surface unbound keys to Unmarshal, so
	// every known key is bound explicitly.
	for _, key := range configKeys() {
		_ = viperInstance.BindEnv(key)
	}

	return viperInstance
}

func configKeys() []string {
	return []string{
		"spec.connection.kubeconfig",
		"spec.connection.context",
		"spec.connection.timeout",
		"spec.client.mode",
		"spec.client.binary",
		"spec.override.group",
		"spec.override.kind",
		"spec.override.attempts",
		"spec.override.retrydelay",
		"spec.verbose",
	}
}

// LoadConfig loads the configuration from files, environment variables, and
// flags. Returns the loaded config, either freshly loaded or previously
// cached. Configuration priority: defaults < config file < environment
// variables < flags. If timer is provided, timing information is included in
// the success notification.
func (m *ConfigManager) LoadConfig(tmr timer.Timer) (*v1alpha1.Config, error) {
	return m.loadConfigWithOptions(tmr, false)
}

// LoadConfigSilent loads the configuration without emitting notifications.
func (m *ConfigManager) LoadConfigSilent() (*v1alpha1.Config, error) {
	return m.loadConfigWithOptions(nil, true)
}

func (m *ConfigManager) loadConfigWithOptions(
	tmr timer.Timer,
	silent bool,
) (*v1alpha1.Config, error) {
	if !silent {
		m.notifyLoadingStart()
	}

	if m.configLoaded {
		if !silent {
			m.notifyConfigReused()
		}

		return m.Config, nil
	}

	if !silent {
		m.notifyLoadingConfig()
	}

	err := m.readConfig(silent)
	if err != nil {
		return nil, err
	}

	flagOverrides := m.captureChangedFlagValues()

	err = m.unmarshalAndApplyDefaults()
	if err != nil {
		return nil, err
	}

	err = m.applyFlagOverrides(flagOverrides)
	if err != nil {
		return nil, err
	}

	err = m.validateConfig()
	if err != nil {
		return nil, err
	}

	if !silent {
		m.notifyLoadingComplete(tmr)
	}

	m.configLoaded = true

	return m.Config, nil
}

func (m *ConfigManager) readConfig(silent bool) error {
	err := m.Viper.ReadInConfig()
	if err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("failed to read config file: %w", err)
		}

		m.configFileFound = false
		if !silent {
			m.notifyUsingDefaults()
		}
	} else {
		m.configFileFound = true
		if !silent {
			m.notifyConfigFound()
		}
	}

	return nil
}

func (m *ConfigManager) unmarshalAndApplyDefaults() error {
	decoderConfig := func(dc *mapstructure.DecoderConfig) {
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			metav1DurationDecodeHook(),
		)
	}

	err := m.Viper.Unmarshal(m.Config, decoderConfig)
	if err != nil {
		return fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	// Apply field selector defaults for empty fields.
	for _, fieldSelector := range m.fieldSelectors {
		fieldPtr := fieldSelector.Selector(m.Config)
		if fieldPtr != nil && isFieldEmpty(fieldPtr) {
			setFieldValue(fieldPtr, fieldSelector.DefaultValue)
		}
	}

	return nil
}

func (m *ConfigManager) captureChangedFlagValues() map[string]string {
	if m.command == nil {
		return nil
	}

	flags := m.command.Flags()
	overrides := make(map[string]string)

	flags.Visit(func(f *pflag.Flag) {
		overrides[f.Name] = f.Value.String()
	})

	return overrides
}

func (m *ConfigManager) applyFlagOverrides(overrides map[string]string) error {
	if overrides == nil {
		return nil
	}

	for _, selector := range m.fieldSelectors {
		fieldPtr := selector.Selector(m.Config)
		if fieldPtr == nil {
			continue
		}

		flagName := m.GenerateFlagName(fieldPtr)

		value, ok := overrides[flagName]
		if !ok {
			continue
		}

		err := setFieldValueFromFlag(fieldPtr, value)
		if err != nil {
			return fmt.Errorf("failed to apply flag override for %s: %w", flagName, err)
		}
	}

	return nil
}

func (m *ConfigManager) validateConfig() error {
	if m.Config.APIVersion != "" && m.Config.APIVersion != v1alpha1.APIVersion {
		return fmt.Errorf("%w: apiVersion %q", ErrUnsupportedConfigVersion, m.Config.APIVersion)
	}

	if m.Config.Kind != "" && m.Config.Kind != v1alpha1.Kind {
		return fmt.Errorf("%w: kind %q", ErrUnsupportedConfigVersion, m.Config.Kind)
	}

	mode := m.Config.Spec.Client.Mode
	if !mode.IsValid() {
		return fmt.Errorf(
			"%w: %q (valid modes: %s)",
			v1alpha1.ErrInvalidMode,
			string(mode),
			strings.Join(mode.ValidValues(), ", "),
		)
	}

	if m.Config.Spec.Override.Attempts < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeAttempts, m.Config.Spec.Override.Attempts)
	}

	return nil
}

func (m *ConfigManager) notifyLoadingStart() {
	notify.WriteMessage(notify.Message{
		Type:    notify.TitleType,
		Content: "Load config...",
		Emoji:   "⏳",
		Writer:  m.Writer,
	})
}

func (m *ConfigManager) notifyConfigReused() {
	notify.WriteMessage(notify.Message{
		Type:    notify.SuccessType,
		Content: "config already loaded, reusing existing config",
		Writer:  m.Writer,
	})
}

func (m *ConfigManager) notifyLoadingConfig() {
	notify.WriteMessage(notify.Message{
		Type:    notify.ActivityType,
		Content: "loading cvoctl config",
		Writer:  m.Writer,
	})
}

func (m *ConfigManager) notifyUsingDefaults() {
	notify.WriteMessage(notify.Message{
		Type:    notify.ActivityType,
		Content: "using default config",
		Writer:  m.Writer,
	})
}

func (m *ConfigManager) notifyConfigFound() {
	notify.WriteMessage(notify.Message{
		Type:    notify.ActivityType,
		Content: "'%s' found",
		Args:    []any{m.Viper.ConfigFileUsed()},
		Writer:  m.Writer,
	})
}

func (m *ConfigManager) notifyLoadingComplete(tmr timer.Timer) {
	notify.WriteMessage(notify.Message{
		Type:    notify.SuccessType,
		Content: "config loaded",
		Timer:   tmr,
		Writer:  m.Writer,
	})
}

// isFieldEmpty checks if a field pointer points to an empty/zero value.
func isFieldEmpty(fieldPtr any) bool {
	if fieldPtr == nil {
		return true
	}

	fieldVal := reflect.ValueOf(fieldPtr)
	if fieldVal.Kind() != reflect.Ptr || fieldVal.IsNil() {
		return true
	}

	fieldVal = fieldVal.Elem()

	return fieldVal.IsZero()
}

// setFieldValue assigns a default value to a field through its pointer,
// converting where the types allow it.
func setFieldValue(fieldPtr, value any) {
	if fieldPtr == nil || value == nil {
		return
	}

	target := reflect.ValueOf(fieldPtr)
	if target.Kind() != reflect.Ptr || target.IsNil() {
		return
	}

	target = target.Elem()
	source := reflect.ValueOf(value)

	switch {
	case source.Type().AssignableTo(target.Type()):
		target.Set(source)
	case source.Type().ConvertibleTo(target.Type()):
		target.Set(source.Convert(target.Type()))
	}
}

// metav1DurationDecodeHook decodes duration strings from config files and
// environment variables into metav1.Duration fields.
func metav1DurationDecodeHook() mapstructure.DecodeHookFuncType {
	return func(_ reflect.Type, to reflect.Type, data any) (any, error) {
		if to != reflect.TypeOf(metav1.Duration{}) {
			return data, nil
		}

		switch value := data.(type) {
		case string:
			parsed, err := time.ParseDuration(value)
			if err != nil {
				return nil, fmt.Errorf("parse duration %q: %w", value, err)
			}

			return metav1.Duration{Duration: parsed}, nil
		case int:
			return metav1.Duration{Duration: time.Duration(value)}, nil
		case int64:
			return metav1.Duration{Duration: time.Duration(value)}, nil
		case float64:
			return metav1.Duration{Duration: time.Duration(value)}, nil
		default:
			return data, nil
		}
	}
}
