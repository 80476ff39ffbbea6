/*
Package blsag implements linkable ring signatures (Back's linkable
spontaneous anonymous group signatures, BLSAG) over a prime-order
elliptic-curve group. A signature proves the message was signed by one member of an ordered
set of public keys without revealing which member, and carries a key image: a
deterministic, secret-derived point that lets any verifier detect two
signatures made with the same secret key without identifying that key.

The protocol layer is generic over the curve interface in the types package.
Two interchangeable edwards25519 backends are provided: ed25519 (the full,
optimized backend) and kyber25519 (the portable backend for restricted
execution targets). Both produce byte-identical signatures for identical
inputs. A supplemental secp256k1 backend is also available; its output is not
interchangeable with the edwards25519 backends.

Signing randomness must come from a cryptographically secure source. Sign
accepts an io.Reader for the purpose and falls back to crypto/rand when given
nil; a predictable source leaks the secret key, so substituting anything else
is only sound in tests. A ring of size one produces a valid but non-anonymous
signature, and duplicate public keys in a ring shrink the anonymity set;
neither is rejected, both are the caller's responsibility.

Tracking spent key images across time is deliberately outside the signature
engine. The registry package provides an in-memory and a persistent
implementation of that collaborator.
*/
package blsag
