// Package config loads domkit.json, the configuration shared by the domkit
// CLI commands.
//
// # Configuration File Structure
//
//	{
//	  "strategy": "auto",
//	  "debug": false,
//	  "color": true,
//	  "maxDocumentSize": 10485760,
//	  "serve": {
//	    "host": "localhost",
//	    "port": 7070,
//	    "allowedOrigins": ["http://localhost:3000"]
//	  },
//	  "s3": {
//	    "region": "us-east-1",
//	    "endpoint": "http://localhost:9000"
//	  },
//	  "metrics": {
//	    "namespace": "domkit"
//	  },
//	  "tracing": {
//	    "skipNoMatch": true
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Serving on", cfg.Address())
package config
