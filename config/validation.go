package config

import "fmt"

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the loaded configuration is internally
// consistent and that everything the server cannot run without is set.
func ValidateConfig(cfg *Config) error {
	if cfg.JWTSecret == "" {
		return ValidationError{Field: "JWT_SECRET", Message: "must be set"}
	}
	if cfg.ServerPort == "" {
		return ValidationError{Field: "SERVER_PORT", Message: "must be set"}
	}
	if cfg.DBHost == "" || cfg.DBName == "" || cfg.DBUser == "" {
		return ValidationError{Field: "DB_*", Message: "database host, name and user must be set"}
	}

	switch cfg.ImageStore {
	case "local":
		if cfg.MediaDir == "" {
			return ValidationError{Field: "MEDIA_DIR", Message: "must be set when IMAGE_STORE=local"}
		}
	case "s3":
		if cfg.S3Bucket == "" {
			return ValidationError{Field: "S3_BUCKET_NAME", Message: "must be set when IMAGE_STORE=s3"}
		}
	default:
		return ValidationError{Field: "IMAGE_STORE", Message: fmt.Sprintf("unknown store %q, expected local or s3", cfg.ImageStore)}
	}

	return nil
}
