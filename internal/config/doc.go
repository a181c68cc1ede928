// Package config provides configuration parsing for colloquy projects.
//
// The configuration is stored in colloquy.json at the project root.
// This package handles loading, saving, and validating configuration.
//
// # Configuration File Structure
//
//	{
//	  "name": "my-blog",
//	  "site": {
//	    "baseUrl": "https://blog.example.com"
//	  },
//	  "comments": {
//	    "liveList": true,
//	    "order": "asc",
//	    "paged": true,
//	    "perPage": 20,
//	    "threaded": true,
//	    "maxDepth": 5
//	  },
//	  "pages": "pages.json",
//	  "preview": {
//	    "port": 4000,
//	    "host": "localhost",
//	    "hotReload": true,
//	    "watch": ["pages.json", "colloquy.json"]
//	  },
//	  "publish": {
//	    "output": "public/comments",
//	    "s3": {
//	      "bucket": "my-bucket",
//	      "prefix": "comments/",
//	      "region": "us-east-1"
//	    }
//	  },
//	  "sessions": {
//	    "store": "memory",
//	    "ttl": "24h",
//	    "users": "users.json"
//	  }
//	}
//
// All fields are optional; missing values fall back to the defaults in New.
package config
