/*
Package operation defines the unit of work shared by the webdist tools.

	+-------------+      +-------------+
	|  Packager   |      |  Rewriter   |
	| (pkg/pack)  |      |(pkg/rewrite)|
	+------+------+      +------+------+
	       |                    |
	       +---------+----------+
	                 |
	          +------+------+
	          |  Operation  |
	          |   Runner    |
	          +-------------+

🎯 Purpose:
- Gives both tools the same Execute entry point
- Runs operations one after another, stopping at the first failure
- Times each operation in the debug log

🔄 Flow:
1. The command builds an Operation from config
2. OperationRunner checks the context, then calls Execute
3. Errors are wrapped with the operation name

Everything is sequential: each tool is a single writer over a local tree.
*/
package operation
