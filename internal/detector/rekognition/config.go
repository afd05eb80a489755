package rekognition

// Config holds the AWS settings for the Rekognition-backed detector.
// Credentials come from the AWS SDK default credential chain.
type Config struct {
	Region string
}

// DefaultConfig returns the default Rekognition configuration.
func DefaultConfig() Config {
	return Config{
		Region: "us-east-1",
	}
}
