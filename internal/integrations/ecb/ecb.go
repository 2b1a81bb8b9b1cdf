package ecb

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"

	"github.com/smartexpense/smartexpense/internal/config"
)

// Client fetches reference exchange rates from the European Central Bank
type Client struct {
	url    string
	client *http.Client
	log    *logrus.Logger
}

// Rates holds one day's EUR reference rates keyed by currency code
type Rates struct {
	Date  string             `json:"date"`
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// NewClient initializes a new ECB client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		url: cfg.RatesURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// fetch downloads the daily rates XML feed
func (c *Client) fetch() ([]byte, error) {
	req, err := http.NewRequest("GET", c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %v", err)
	}

	c.log.Debugf("ECB XML response: %s", string(body))

	return body, nil
}

// parse extracts the dated rate cube from the feed
func parse(rawBody []byte) (*Rates, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(rawBody); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %v", err)
	}

	dated := doc.FindElement("//Cube/Cube[@time]")
	if dated == nil {
		return nil, fmt.Errorf("no dated rate cube found in XML")
	}

	rates := &Rates{
		Date:  dated.SelectAttrValue("time", ""),
		Base:  "EUR",
		Rates: make(map[string]float64),
	}
	for _, cube := range dated.FindElements("./Cube") {
		currency := cube.SelectAttrValue("currency", "")
		rateText := cube.SelectAttrValue("rate", "")
		if currency == "" || rateText == "" {
			continue
		}
		var rate float64
		if _, err := fmt.Sscanf(rateText, "%f", &rate); err != nil {
			return nil, fmt.Errorf("failed to parse rate for %s: %v", currency, err)
		}
		rates.Rates[currency] = rate
	}
	if len(rates.Rates) == 0 {
		return nil, fmt.Errorf("no rates found in XML")
	}

	return rates, nil
}

// GetRates retrieves the latest daily reference rates
func (c *Client) GetRates() (*Rates, error) {
	body, err := c.fetch()
	if err != nil {
		return nil, err
	}

	rates, err := parse(body)
	if err != nil {
		return nil, err
	}

	c.log.Infof("Retrieved %d reference rates for %s", len(rates.Rates), rates.Date)
	return rates, nil
}
