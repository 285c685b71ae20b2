/*
Package tausch is a toolkit for building privacy-preserving message routing on
top of the Damgård–Jurik additively homomorphic cryptosystem. The library features:

  - A generalized Paillier (Damgård–Jurik) cryptosystem for arbitrary expansion s >= 1.
  - A Keccak sponge usable as hash, XOF and deterministic pseudorandom generator.
  - A homomorphic router that fans out encrypted messages without learning the routing.
*/
package tausch
