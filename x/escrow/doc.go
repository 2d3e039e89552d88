/*
Package escrow implements a two party exchange of two distinct tokens.

Party A creates an escrow that fixes the terms of the deal forever: who
takes part, which mint each party deposits, how much and until when. The
escrow record lives at an address derived from both parties, so there can
be at most one escrow per ordered pair of parties. Two vaults, one per mint,
are allocated together with the record. Vault addresses are derived from the
escrow address and the mint, and the escrow address is the only owner of
both. No key can sign for a derived address, so nothing but this extension
can move tokens out of a vault.

Each party then deposits exactly its agreed amount into its vault, once.
Deposits by both parties are independent and can happen in any order. An
escrow with both deposits done is fully funded.
*/
package escrow
