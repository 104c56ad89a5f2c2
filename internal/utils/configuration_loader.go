package utils

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const (
	environmentKeySeparatorOldConstant              = "."
	environmentKeySeparatorNewConstant              = "_"
	listSeparatorConstant                           = ","
	configurationReadErrorTemplateConstant          = "failed to read configuration: %w"
	configurationUnmarshalErrorTemplateConstant     = "failed to parse configuration: %w"
	embeddedConfigurationMergeErrorTemplateConstant = "failed to merge embedded configuration: %w"
)

// ConfigurationLoader wraps Viper to load structured configuration files and environment overrides.
type ConfigurationLoader struct {
	configurationName         string
	configurationType         string
	environmentPrefix         string
	searchPaths               []string
	environmentKeyReplacer    *strings.Replacer
	embeddedConfiguration     []byte
	embeddedConfigurationType string
}

// LoadedConfiguration surfaces metadata about the resolved configuration.
// SkippedConfigFile and SkipError are set when a discovered file could not be
// used and the remaining sources were loaded without it.
type LoadedConfiguration struct {
	ConfigFileUsed    string
	SkippedConfigFile string
	SkipError         error
}

// NewConfigurationLoader creates a loader that searches known paths and respects an environment prefix.
func NewConfigurationLoader(configurationName string, configurationType string, environmentPrefix string, searchPaths []string) *ConfigurationLoader {
	return &ConfigurationLoader{
		configurationName:      configurationName,
		configurationType:      configurationType,
		environmentPrefix:      environmentPrefix,
		searchPaths:            slices.Clone(searchPaths),
		environmentKeyReplacer: strings.NewReplacer(environmentKeySeparatorOldConstant, environmentKeySeparatorNewConstant),
	}
}

// SetEmbeddedConfiguration stores embedded configuration data merged before user-provided configuration files.
func (loader *ConfigurationLoader) SetEmbeddedConfiguration(configurationData []byte, configurationType string) {
	if loader == nil {
		return
	}

	loader.embeddedConfiguration = nil
	loader.embeddedConfigurationType = strings.TrimSpace(configurationType)

	if len(configurationData) == 0 {
		return
	}

	loader.embeddedConfiguration = bytes.Clone(configurationData)
}

// LoadConfiguration populates targetConfiguration using defaults, embedded
// data, configuration files, and environment variables, in increasing order
// of precedence. An explicitly requested file that cannot be read or decoded
// is an error. A file discovered in the search paths is only advisory: when it
// cannot be read or decoded it is skipped and reported in the result.
func (loader *ConfigurationLoader) LoadConfiguration(configurationFilePath string, defaultValues map[string]any, targetConfiguration any) (LoadedConfiguration, error) {
	if len(configurationFilePath) > 0 {
		return loader.load(configurationFilePath, loader.searchPaths, defaultValues, targetConfiguration)
	}

	loadedConfiguration, loadError := loader.load("", loader.searchPaths, defaultValues, targetConfiguration)
	if loadError == nil || len(loadedConfiguration.ConfigFileUsed) == 0 {
		return loadedConfiguration, loadError
	}

	fallbackConfiguration, fallbackError := loader.load("", nil, defaultValues, targetConfiguration)
	if fallbackError != nil {
		return LoadedConfiguration{}, fallbackError
	}
	fallbackConfiguration.SkippedConfigFile = loadedConfiguration.ConfigFileUsed
	fallbackConfiguration.SkipError = loadError
	return fallbackConfiguration, nil
}

func (loader *ConfigurationLoader) load(configurationFilePath string, searchPaths []string, defaultValues map[string]any, targetConfiguration any) (LoadedConfiguration, error) {
	viperInstance := viper.New()
	viperInstance.SetConfigName(loader.configurationName)
	viperInstance.SetConfigType(loader.configurationType)

	if len(loader.embeddedConfiguration) > 0 {
		configurationType := loader.configurationType
		if len(loader.embeddedConfigurationType) > 0 {
			configurationType = loader.embeddedConfigurationType
		}

		viperInstance.SetConfigType(configurationType)
		mergeError := viperInstance.MergeConfig(bytes.NewReader(loader.embeddedConfiguration))
		if mergeError != nil {
			return LoadedConfiguration{}, fmt.Errorf(embeddedConfigurationMergeErrorTemplateConstant, mergeError)
		}

		viperInstance.SetConfigType(loader.configurationType)
	}

	for _, searchPath := range searchPaths {
		viperInstance.AddConfigPath(searchPath)
	}

	viperInstance.SetEnvPrefix(loader.environmentPrefix)
	if loader.environmentKeyReplacer != nil {
		viperInstance.SetEnvKeyReplacer(loader.environmentKeyReplacer)
	}
	viperInstance.AutomaticEnv()

	for defaultKey, defaultValue := range defaultValues {
		viperInstance.SetDefault(defaultKey, defaultValue)
	}

	if len(configurationFilePath) > 0 {
		viperInstance.SetConfigFile(configurationFilePath)
	}

	if len(configurationFilePath) > 0 || len(searchPaths) > 0 {
		readError := viperInstance.MergeInConfig()
		if readError != nil {
			var notFoundError viper.ConfigFileNotFoundError
			if !errors.As(readError, &notFoundError) {
				return LoadedConfiguration{ConfigFileUsed: viperInstance.ConfigFileUsed()}, fmt.Errorf(configurationReadErrorTemplateConstant, readError)
			}
		}
	}

	unmarshalError := viperInstance.Unmarshal(targetConfiguration, viper.DecodeHook(ConfigurationDecodeHook()))
	if unmarshalError != nil {
		return LoadedConfiguration{ConfigFileUsed: viperInstance.ConfigFileUsed()}, fmt.Errorf(configurationUnmarshalErrorTemplateConstant, unmarshalError)
	}

	return LoadedConfiguration{ConfigFileUsed: viperInstance.ConfigFileUsed()}, nil
}

// ConfigurationDecodeHook trims surrounding whitespace from string values and
// splits comma-separated strings into slices.
func ConfigurationDecodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.DecodeHookFuncKind(trimmedStringDecodeHook),
		mapstructure.StringToSliceHookFunc(listSeparatorConstant),
	)
}

func trimmedStringDecodeHook(sourceKind reflect.Kind, targetKind reflect.Kind, data any) (any, error) {
	if sourceKind != reflect.String || targetKind != reflect.String {
		return data, nil
	}
	stringValue, isString := data.(string)
	if !isString {
		return data, nil
	}
	return strings.TrimSpace(stringValue), nil
}
