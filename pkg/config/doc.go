/*
Package config holds the settings for the packager and the URL rewriter.

	            +-------------+
	            |   Default   |
	            | (built in)  |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+ +-----+----+ +-----+----+
	|   YAML   | |   JSON   | |   HCL    |
	|  Parser  | |  Parser  | |  Parser  |
	+----------+ +----------+ +----------+

🎯 Purpose:
- Replaces the constants of the old maintenance scripts with a value that
  is passed into each operation
- Lets a project keep its own ignore lists and URLs in a .webdist file

🔄 Flow:
1. Start from Default()
2. Overlay the config file, if any (keys that are absent keep their default)
3. Overlay command line flags
4. Validate

HCL files get an env object so secrets such as the deployment URL do not
have to be committed:

	rewrite {
	  root    = "."
	  new_url = env.BRIDGE_URL
	}

🔍 Example:

	cfg, path, err := config.LoadOrDefault(ctx, "", ".")
	if err != nil {
		return err
	}
*/
package config
