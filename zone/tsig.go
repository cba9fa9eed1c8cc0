package zone

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/miekg/dns"
	"gopkg.in/yaml.v2"
)

// nolint:gochecknoglobals
var tsigAlgorithms = map[string]string{
	"hmac-sha1":   dns.HmacSHA1,
	"hmac-sha224": dns.HmacSHA224,
	"hmac-sha256": dns.HmacSHA256,
	"hmac-sha384": dns.HmacSHA384,
	"hmac-sha512": dns.HmacSHA512,
}

// TSIGKey is the shared secret used to authenticate a zone transfer,
// read verbatim from a small YAML file.
type TSIGKey struct {
	Name      string `yaml:"name"`
	Algorithm string `yaml:"algorithm"`
	Secret    string `yaml:"secret"`
}

// ReadTSIGKey reads and validates a key file.
func ReadTSIGKey(path string) (*TSIGKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("can't read TSIG key file: %w", err)
	}

	var key TSIGKey
	if err := yaml.UnmarshalStrict(data, &key); err != nil {
		return nil, fmt.Errorf("wrong TSIG key file structure: %w", err)
	}

	if err := key.validate(); err != nil {
		return nil, err
	}

	return &key, nil
}

func (k *TSIGKey) validate() error {
	var result *multierror.Error

	if k.Name == "" {
		result = multierror.Append(result, fmt.Errorf("TSIG key name is missing"))
	}

	if _, ok := tsigAlgorithms[strings.ToLower(k.Algorithm)]; !ok {
		result = multierror.Append(result, fmt.Errorf("unsupported TSIG algorithm '%s'", k.Algorithm))
	}

	if k.Secret == "" {
		result = multierror.Append(result, fmt.Errorf("TSIG secret is missing"))
	} else if _, err := base64.StdEncoding.DecodeString(k.Secret); err != nil {
		result = multierror.Append(result, fmt.Errorf("TSIG secret is not valid base64: %w", err))
	}

	return result.ErrorOrNil()
}

func (k *TSIGKey) fqdnName() string {
	return dns.Fqdn(k.Name)
}

func (k *TSIGKey) algorithmFQDN() string {
	return tsigAlgorithms[strings.ToLower(k.Algorithm)]
}
