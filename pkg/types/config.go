package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "lpa/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// AcquireConfig holds settings for the acquisition stage.
type AcquireConfig struct {
	HTTPConfig `yaml:",inline"`

	// DownloadDelay is the delay between consecutive downloads (default 1s).
	DownloadDelay time.Duration `json:"download_delay" yaml:"download_delay"`

	// DataDir is the base directory for book data (contains raw/, metadata/).
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// MaxRetries is the retry budget for rate-limited downloads (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// ConvertConfig holds settings for the BOK-to-text conversion stage.
type ConvertConfig struct {
	// Encoding forces a source encoding by IANA name. Empty means detect.
	Encoding string `json:"encoding,omitempty" yaml:"encoding,omitempty"`

	// CorpusLines enables line filtering for corpus use: blank lines and
	// #-prefixed comment lines are dropped from the output.
	CorpusLines bool `json:"corpus_lines" yaml:"corpus_lines"`

	// Recursive descends into subdirectories when converting a tree.
	Recursive bool `json:"recursive" yaml:"recursive"`
}

// ExtractConfig holds settings for the Shamela HTML extraction stage.
type ExtractConfig struct {
	// OutputDir receives per-book text files, metadata sidecars, and the
	// aggregated metadata.json.
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// CorpusConfig holds settings for period corpus assembly.
type CorpusConfig struct {
	// MaxDeathYear is the exclusive Hijri cutoff for author death years.
	// Books whose author died in or after this year are excluded
	// (default 1214).
	MaxDeathYear int `json:"max_death_year" yaml:"max_death_year"`

	// OutputDir is the directory the corpus is assembled into.
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// NgramConfig holds settings for n-gram frequency analysis.
type NgramConfig struct {
	// MinN and MaxN bound the n-gram sizes analyzed (defaults 1 and 6).
	MinN int `json:"min_n" yaml:"min_n"`
	MaxN int `json:"max_n" yaml:"max_n"`

	// TopK is the number of top n-grams reported for each n (default 100).
	TopK int `json:"top_k" yaml:"top_k"`

	// Fold applies Arabic orthography folding before segmentation.
	Fold bool `json:"fold" yaml:"fold"`

	// OutputDir receives the per-n reports and the summary.
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// IndexConfig holds settings for the SQLite book index.
type IndexConfig struct {
	// IndexDir is the directory holding the SQLite database and exports.
	IndexDir string `json:"index_dir" yaml:"index_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Acquire AcquireConfig `json:"acquire" yaml:"acquire"`
	Convert ConvertConfig `json:"convert" yaml:"convert"`
	Extract ExtractConfig `json:"extract" yaml:"extract"`
	Corpus  CorpusConfig  `json:"corpus" yaml:"corpus"`
	Ngram   NgramConfig   `json:"ngram" yaml:"ngram"`
	Index   IndexConfig   `json:"index" yaml:"index"`
}
