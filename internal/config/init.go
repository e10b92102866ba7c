package config

import (
	"os"

	"git.home.luguber.info/inful/blogbuilder/internal/errors"
)

const starterConfig = `# blogbuilder configuration
site:
  title: My Blog
  url: https://blog.example.com
  description: Things I write about

content:
  root: pages/posts
  strip_prefix: pages
  extension: .mdx

output:
  listing: generated/posts.mjs
  feed: public/rss.xml

# dates:
#   from_git: true

# watch:
#   debounce: 500ms
#   interval: 15m
#   metrics_addr: ":9180"
#   nats_url: nats://localhost:4222
#   nats_subject: blogbuilder.builds
`

// Init writes a starter configuration file. An existing file is only
// replaced when force is set.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.New(errors.CategoryConfig, errors.SeverityFatal, "configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath)
	}

	if err := os.WriteFile(configPath, []byte(starterConfig), 0o644); err != nil {
		return errors.Wrap(err, errors.CategoryConfig, errors.SeverityFatal, "failed to write configuration file").
			WithContext("path", configPath)
	}
	return nil
}
